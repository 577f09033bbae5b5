package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

const sampleCSV = "\ufeffStateName,DistrictName,Crop,QueryType,QueryText,KccAns\n" +
	"RAJASTHAN,JAIPUR,Mustard,Plant Protection,How to control aphids in mustard?,\"Spray neem oil, 5ml per litre\"\n" +
	"PUNJAB,LUDHIANA,Wheat,Weather,,No query recorded\n" +
	"BIHAR,PATNA,Paddy,Plant Protection,Paddy blast control\n"

func TestParse(t *testing.T) {
	records, err := Parse(context.Background(), strings.NewReader(sampleCSV))

	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, domain.RawRecord{
		Row:       0,
		QueryText: "How to control aphids in mustard?",
		Answer:    "Spray neem oil, 5ml per litre",
		State:     "RAJASTHAN",
		District:  "JAIPUR",
		Crop:      "Mustard",
	}, records[0])

	assert.Equal(t, 1, records[1].Row)
	assert.Empty(t, records[1].QueryText)

	// Short rows yield empty trailing fields.
	assert.Equal(t, 2, records[2].Row)
	assert.Equal(t, "Paddy blast control", records[2].QueryText)
	assert.Empty(t, records[2].Answer)
}

func TestParse_OptionalColumnsMissing(t *testing.T) {
	records, err := Parse(context.Background(), strings.NewReader("QueryText,KccAns\nq,a\n"))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].State)
	assert.Empty(t, records[0].Crop)
}

func TestParse_MissingRequiredColumns(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader("StateName,Crop\nX,Y\n"))

	require.ErrorIs(t, err, domain.ErrData)
	assert.Contains(t, err.Error(), "QueryText")
	assert.Contains(t, err.Error(), "KccAns")
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrData)
}

func TestParse_HeaderOnly(t *testing.T) {
	records, err := Parse(context.Background(), strings.NewReader("QueryText,KccAns\n"))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVReader_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "KCC-DataSet.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0600))
	reader := NewCSVReader(path)

	records, err := reader.Read(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, path, reader.Source())
}

func TestCSVReader_MissingFile(t *testing.T) {
	_, err := NewCSVReader(filepath.Join(t.TempDir(), "nope.csv")).Read(context.Background())
	assert.ErrorIs(t, err, domain.ErrData)
}
