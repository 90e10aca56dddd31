package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cris-labs/cris/internal/mapspec"
	"github.com/cris-labs/cris/internal/model"
)

func TestParseStatuses_Default(t *testing.T) {
	set, err := parseStatuses(nil)
	require.NoError(t, err)
	assert.True(t, set[model.StatusStayed])
	assert.True(t, set[model.StatusJoined])
	assert.False(t, set[model.StatusChurned])
}

func TestParseStatuses_Explicit(t *testing.T) {
	set, err := parseStatuses([]string{"Churned"})
	require.NoError(t, err)
	assert.True(t, set[model.StatusChurned])
	assert.False(t, set[model.StatusStayed])
}

func TestParseStatuses_Unknown(t *testing.T) {
	_, err := parseStatuses([]string{"Lapsed"})
	assert.Error(t, err)
}

func TestParseFocus(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *mapspec.Coordinate
		wantErr bool
	}{
		{name: "valid", in: "36.5,-119.2", want: &mapspec.Coordinate{Lat: 36.5, Lon: -119.2}},
		{name: "spaces", in: " 36.5 , -119.2 ", want: &mapspec.Coordinate{Lat: 36.5, Lon: -119.2}},
		{name: "missing lon", in: "36.5", wantErr: true},
		{name: "not numbers", in: "here,there", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFocus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteSpec_JSON(t *testing.T) {
	spec := mapspec.Build(nil, mapspec.Options{})

	var buf bytes.Buffer
	require.NoError(t, writeSpec(&buf, spec, "json"))

	var got mapspec.MapSpec
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, mapspec.FallbackCenter, got.Center)
}

func TestWriteSpec_HTML(t *testing.T) {
	spec := mapspec.Build(nil, mapspec.Options{})

	var buf bytes.Buffer
	require.NoError(t, writeSpec(&buf, spec, "html"))
	assert.True(t, strings.Contains(buf.String(), "leaflet"))
}

func TestWriteSpec_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeSpec(&buf, mapspec.MapSpec{}, "pdf")
	assert.Error(t, err)
}
