package csvfile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/trailboard/internal/adapters/csvfile"
	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/pkg/config"
)

const trailsCSV = "\xef\xbb\xbf OSMPTrailsOSMPTRAILID ,OSMPTrailsOSMPTRAILNAME,OSMPTrailsOSMPDOGREGDESC,MILEAGE,DIFFICULTY,OSMPTrailsOSMPBICYCLES,OSMPTrailsOSMPHORSES,OSMPTrailsOSMPDOGS,OSMPTrailsOSMPEBIKES\n" +
	"T1,Mesa,Voice and Sight control,3.2,Moderate,No,Yes,Yes,No\n" +
	"T2,Sanitas,Leash Required,n/a,Hard,No,No,Yes,No\n" +
	"T3,Gregory,No Dogs,,Easy,yes,No,No,No\n"

const pointsCSV = "OSMPTrailsOSMPTRAILID,OSMPTrailsOSMPTRAILNAME,DOGREGDESC,DIFFICULTY,latitude,longitude\n" +
	"T1,Mesa,,,39.98,-105.28\n" +
	"T2,Sanitas,Leash Required,Hard,40.03,-105.30\n" +
	"T9,Orphan,,,,\n"

func columns() config.ColumnsConfig {
	return config.ColumnsConfig{
		Trails: config.TrailColumns{
			ID: "OSMPTrailsOSMPTRAILID", Name: "OSMPTrailsOSMPTRAILNAME",
			DogPolicy: "OSMPTrailsOSMPDOGREGDESC", Mileage: "MILEAGE", Difficulty: "DIFFICULTY",
			Bicycles: "OSMPTrailsOSMPBICYCLES", Horses: "OSMPTrailsOSMPHORSES",
			Dogs: "OSMPTrailsOSMPDOGS", EBikes: "OSMPTrailsOSMPEBIKES",
		},
		Points: config.PointColumns{
			ID: "OSMPTrailsOSMPTRAILID", Name: "OSMPTrailsOSMPTRAILNAME", DogPolicy: "DOGREGDESC",
			Difficulty: "DIFFICULTY", Latitude: "latitude", Longitude: "longitude",
		},
		Amenities: config.AmenityColumns{Name: "name", Latitude: "latitude", Longitude: "longitude"},
		Shapes:    config.ShapeColumns{Name: "TRAILNAME"},
	}
}

func files(dir string) config.DataConfig {
	return config.DataConfig{
		Dir:           dir,
		Trails:        "Trails.csv",
		TrailPoints:   "merged_trails.csv",
		Parks:         "parks.csv",
		DogBusinesses: "dog_friendly_businesses.csv",
		Veterinarians: "veterinarians.csv",
	}
}

func write(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Trails.csv", trailsCSV)
	write(t, dir, "merged_trails.csv", pointsCSV)
	write(t, dir, "parks.csv", "name,latitude,longitude\nCentral Park,40.015,-105.275\nNo Coords,,\n")

	src := csvfile.NewSource(files(dir), columns())
	require.NoError(t, src.Ping(context.Background()))

	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Trails, 3)
	mesa := ds.Trails[0]
	assert.Equal(t, "T1", mesa.ID, "BOM and padding must be stripped from the header")
	require.NotNil(t, mesa.Mileage)
	assert.Equal(t, 3.2, *mesa.Mileage)
	assert.Equal(t, "Yes", mesa.Uses[domain.ActivityHorses])
	assert.Nil(t, ds.Trails[1].Mileage, "unparsable mileage")
	assert.Nil(t, ds.Trails[2].Mileage, "empty mileage")

	require.Len(t, ds.Points, 3)
	assert.Equal(t, "Voice and Sight control", ds.Points[0].DogPolicy, "inherited from trail T1")
	assert.Equal(t, "Moderate", ds.Points[0].Difficulty, "inherited from trail T1")
	require.NotNil(t, ds.Points[0].Location)
	assert.Equal(t, 39.98, ds.Points[0].Location.Lat)
	assert.Nil(t, ds.Points[2].Location)
	assert.Empty(t, ds.Points[2].DogPolicy)

	require.Len(t, ds.Amenities, 1, "rows without coordinates are dropped")
	assert.Equal(t, domain.AmenityPark, ds.Amenities[0].Kind)
	assert.Equal(t, "Central Park", ds.Amenities[0].Name)
	assert.Empty(t, ds.Shapes)
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Trails.csv", "OSMPTrailsOSMPTRAILID,MILEAGE\nT1,1.0\n")
	write(t, dir, "merged_trails.csv", pointsCSV)

	_, err := csvfile.NewSource(files(dir), columns()).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvfile.ErrMissingColumn))

	var colErr *csvfile.ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "OSMPTrailsOSMPDOGREGDESC", colErr.Column)
	assert.Contains(t, colErr.Error(), "Trails.csv")
}

func TestLoad_PresentAmenityFileMissingColumn(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Trails.csv", trailsCSV)
	write(t, dir, "merged_trails.csv", pointsCSV)
	write(t, dir, "veterinarians.csv", "name,lat,lon\nVet,40,-105\n")

	_, err := csvfile.NewSource(files(dir), columns()).Load(context.Background())
	assert.ErrorIs(t, err, csvfile.ErrMissingColumn)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Trails.csv", trailsCSV)

	src := csvfile.NewSource(files(dir), columns())
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Error(t, src.Ping(context.Background()))
}

func TestLoad_EmptyFileHasNoColumns(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Trails.csv", "")
	write(t, dir, "merged_trails.csv", pointsCSV)

	_, err := csvfile.NewSource(files(dir), columns()).Load(context.Background())
	assert.ErrorIs(t, err, csvfile.ErrMissingColumn)
}

func TestInheritFromTrails(t *testing.T) {
	trails := []domain.Trail{
		{ID: "A", Name: "Alpha", DogPolicy: "Leash Required", Difficulty: "Easy"},
		{ID: "A", DogPolicy: "No Dogs"},
	}
	points := []domain.Trail{
		{ID: "A"},
		{ID: "A", DogPolicy: "Voice and Sight"},
		{ID: ""},
	}
	csvfile.InheritFromTrails(points, trails)

	assert.Equal(t, "Leash Required", points[0].DogPolicy, "first trail row with the ID wins")
	assert.Equal(t, "Easy", points[0].Difficulty)
	assert.Equal(t, "Alpha", points[0].Name)
	assert.Equal(t, "Voice and Sight", points[1].DogPolicy, "own value is kept")
	assert.Empty(t, points[2].DogPolicy)
}
