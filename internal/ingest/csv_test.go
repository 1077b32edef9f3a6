package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	data := `Company,Location,Date,Time,Rocket,Mission,RocketStatus,Price,MissionStatus
SpaceX,"LC-39A, KSC, Florida, USA",2020-01-07,02:19:00,Falcon 9,Starlink-2,Active,"$50,000,000",Success
RVSN USSR,"Site 1/5, Baikonur",1957-10-04,,Sputnik 8K71PS,Sputnik-1,Retired,,Success
`
	records, err := ReadRecords(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "SpaceX", records[0].Company)
	assert.Equal(t, "LC-39A, KSC, Florida, USA", records[0].Location)
	assert.Equal(t, "02:19:00", records[0].Time)
	assert.Equal(t, "$50,000,000", records[0].Price)

	assert.Equal(t, "Sputnik 8K71PS", records[1].Rocket)
	assert.Empty(t, records[1].Time)
	assert.Empty(t, records[1].Price)
}

func TestReadRecordsHeaderIsCaseInsensitiveAndOrderFree(t *testing.T) {
	data := `mission,rocket,DATE,company
Apollo 11,Saturn V,1969-07-16,NASA
`
	records, err := ReadRecords(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Apollo 11", records[0].Mission)
	assert.Equal(t, "Saturn V", records[0].Rocket)
	assert.Equal(t, "NASA", records[0].Company)
	assert.Empty(t, records[0].Price, "missing columns read as empty")
}

func TestReadRecordsRaggedRows(t *testing.T) {
	data := `Company,Location,Date,Time,Rocket,Mission
NASA,Florida,1969-07-16
`
	records, err := ReadRecords(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "NASA", records[0].Company)
	assert.Empty(t, records[0].Rocket, "cells past the row's end read as empty")
}

func TestReadRecordsEmptyInput(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}
