package shapefile_test

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/trailboard/internal/adapters/shapefile"
)

func writeTrails(t *testing.T, path string) {
	t.Helper()
	w, err := shp.Create(path, shp.POLYLINE)
	require.NoError(t, err)

	w.SetFields([]shp.Field{shp.StringField("TRAILNAME", 40)})

	mesa := shp.NewPolyLine([][]shp.Point{
		{{X: -105.28, Y: 39.98}, {X: -105.27, Y: 39.99}},
		{{X: -105.26, Y: 40.00}, {X: -105.25, Y: 40.01}, {X: -105.24, Y: 40.02}},
	})
	idx := w.Write(mesa)
	w.WriteAttribute(int(idx), 0, "Mesa Trail")

	sanitas := shp.NewPolyLine([][]shp.Point{
		{{X: -105.30, Y: 40.03}, {X: -105.31, Y: 40.04}},
	})
	idx = w.Write(sanitas)
	w.WriteAttribute(int(idx), 0, "Sanitas")

	w.Close()
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trails.shp")
	writeTrails(t, path)

	shapes, err := shapefile.Load(path, "trailname")
	require.NoError(t, err)
	require.Len(t, shapes, 2)

	assert.Equal(t, "Mesa Trail", shapes[0].Name)
	require.Len(t, shapes[0].Parts, 2)
	assert.Len(t, shapes[0].Parts[0], 2)
	assert.Len(t, shapes[0].Parts[1], 3)
	assert.Equal(t, 39.98, shapes[0].Parts[0][0].Lat)
	assert.Equal(t, -105.28, shapes[0].Parts[0][0].Lon)

	assert.Equal(t, "Sanitas", shapes[1].Name)
	assert.Len(t, shapes[1].Parts, 1)
}

func TestLoad_UnknownNameField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trails.shp")
	writeTrails(t, path)

	shapes, err := shapefile.Load(path, "NAME")
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Empty(t, shapes[0].Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := shapefile.Load(filepath.Join(t.TempDir(), "missing.shp"), "TRAILNAME")
	assert.Error(t, err)
}
