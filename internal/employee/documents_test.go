package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/bancalarisantiago/workfolio/internal/config"
	docdomain "github.com/bancalarisantiago/workfolio/internal/document/domain"
)

func strptr(s string) *string { return &s }

func TestLatestFilesHigherVersionWins(t *testing.T) {
	docID := "doc-1"
	files := []docdomain.DocumentFile{
		{ID: "f1", DocumentID: strptr(docID), Version: 1},
		{ID: "f3", DocumentID: strptr(docID), Version: 3},
		{ID: "f2", DocumentID: strptr(docID), Version: 2},
	}

	latest := LatestFiles(files)
	require.Len(t, latest, 1)
	assert.Equal(t, "f3", latest[docID].ID)
}

func TestLatestFilesEqualVersionFallsBackToUploadTime(t *testing.T) {
	docID := "doc-1"
	earlier := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	files := []docdomain.DocumentFile{
		{ID: "f1", DocumentID: strptr(docID), Version: 1, UploadedAt: earlier},
		{ID: "f2a", DocumentID: strptr(docID), Version: 2, UploadedAt: earlier},
		{ID: "f2b", DocumentID: strptr(docID), Version: 2, UploadedAt: later},
	}

	latest := LatestFiles(files)
	assert.Equal(t, "f2b", latest[docID].ID)
}

func TestLatestFilesEqualTimestampKeepsFirstSeen(t *testing.T) {
	docID := "doc-1"
	ts := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	files := []docdomain.DocumentFile{
		{ID: "first", DocumentID: strptr(docID), Version: 2, UploadedAt: ts},
		{ID: "second", DocumentID: strptr(docID), Version: 2, UploadedAt: ts},
	}

	latest := LatestFiles(files)
	assert.Equal(t, "first", latest[docID].ID)
}

func TestLatestFilesSkipsOrphanedFiles(t *testing.T) {
	files := []docdomain.DocumentFile{
		{ID: "f1", DocumentID: nil, Version: 1},
	}
	assert.Empty(t, LatestFiles(files))
}

func TestBuildGroupsIncludesEveryConfiguredCategory(t *testing.T) {
	cfg := config.DefaultCategoryConfig()

	docs := []docdomain.Document{
		{ID: "d1", Title: "Contrato", Metadata: datatypes.JSONMap{"category": "legajo"}},
	}

	groups := BuildGroups(cfg, docs, nil)
	require.Len(t, groups, len(cfg.Categories))

	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
		require.NotNil(t, g.Records)
	}
	assert.Equal(t, []string{"legajo", "recibos-anteriores", "licencias", "sanciones", "otros"}, keys)

	assert.Len(t, groups[0].Records, 1)
	assert.Equal(t, "Legajo", groups[0].Label)
	assert.Len(t, groups[4].Records, 0)
}

func TestBuildGroupsUnknownCategoryFallsBack(t *testing.T) {
	cfg := config.DefaultCategoryConfig()

	docs := []docdomain.Document{
		{ID: "d1", Metadata: datatypes.JSONMap{"category": "no-such-key"}},
		{ID: "d2"},
		{ID: "d3", Metadata: datatypes.JSONMap{"category": "  LEGAJO  "}},
	}

	groups := BuildGroups(cfg, docs, nil)
	byKey := make(map[string]DocumentGroup, len(groups))
	for _, g := range groups {
		byKey[g.Key] = g
	}

	assert.Len(t, byKey["otros"].Records, 2)
	assert.Len(t, byKey["legajo"].Records, 1)
}

func TestBuildGroupsSortsByUploadTimeWithFilelessLast(t *testing.T) {
	cfg := config.DefaultCategoryConfig()
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	docs := []docdomain.Document{
		{ID: "old", Metadata: datatypes.JSONMap{"category": "legajo"}},
		{ID: "bare", Metadata: datatypes.JSONMap{"category": "legajo"}},
		{ID: "new", Metadata: datatypes.JSONMap{"category": "legajo"}},
	}
	files := []docdomain.DocumentFile{
		{ID: "f-old", DocumentID: strptr("old"), Version: 1, UploadedAt: base},
		{ID: "f-new", DocumentID: strptr("new"), Version: 1, UploadedAt: base.Add(time.Hour)},
	}

	groups := BuildGroups(cfg, docs, files)
	var legajo DocumentGroup
	for _, g := range groups {
		if g.Key == "legajo" {
			legajo = g
		}
	}

	require.Len(t, legajo.Records, 3)
	assert.Equal(t, "new", legajo.Records[0].Document.ID)
	assert.Equal(t, "old", legajo.Records[1].Document.ID)
	assert.Equal(t, "bare", legajo.Records[2].Document.ID)
	require.NotNil(t, legajo.Records[0].File)
	assert.Nil(t, legajo.Records[2].File)
}

func TestBuildGroupsCarriesNotes(t *testing.T) {
	cfg := config.DefaultCategoryConfig()
	docs := []docdomain.Document{
		{ID: "d1", Metadata: datatypes.JSONMap{"category": "licencias", "notes": "Vacaciones 2025"}},
	}

	groups := BuildGroups(cfg, docs, nil)
	for _, g := range groups {
		if g.Key != "licencias" {
			continue
		}
		require.Len(t, g.Records, 1)
		assert.Equal(t, "Vacaciones 2025", g.Records[0].Notes)
	}
}
