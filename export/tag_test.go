package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want tagConfig
	}{
		{
			name: "empty",
			tag:  "",
			want: tagConfig{},
		},
		{
			name: "default",
			tag:  "default:localhost",
			want: tagConfig{defValue: "localhost", hasDefault: true},
		},
		{
			name: "empty default is still a default",
			tag:  "default:",
			want: tagConfig{defValue: "", hasDefault: true},
		},
		{
			name: "bare booleans",
			tag:  "required,secret",
			want: tagConfig{required: true, secret: true},
		},
		{
			name: "explicit boolean values",
			tag:  "required:true,secret:false",
			want: tagConfig{required: true, secret: false},
		},
		{
			name: "min max",
			tag:  "min:1,max:65535",
			want: tagConfig{min: "1", max: "65535"},
		},
		{
			name: "oneof",
			tag:  "oneof:dev,staging,prod",
			want: tagConfig{oneof: []string{"dev", "staging", "prod"}},
		},
		{
			name: "oneof followed by directive",
			tag:  "oneof:a,b,required",
			want: tagConfig{oneof: []string{"a", "b"}, required: true},
		},
		{
			name: "name alias",
			tag:  "name:DATABASE_URL,required",
			want: tagConfig{name: "DATABASE_URL", required: true},
		},
		{
			name: "prefix",
			tag:  "prefix:database",
			want: tagConfig{prefix: "database"},
		},
		{
			name: "spaces tolerated",
			tag:  " required , min:2",
			want: tagConfig{required: true, min: "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTag(tt.tag))
		})
	}
}

func TestSplitDirectives_OneofCommas(t *testing.T) {
	got := splitDirectives("default:x,oneof:a,b,c,secret")
	assert.Equal(t, []string{"default:x", "oneof:a,b,c", "secret"}, got)
}
