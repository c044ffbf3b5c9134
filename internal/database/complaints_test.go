package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/civicsetu/resolver/internal/database"
	"github.com/civicsetu/resolver/internal/domain"
)

func newTestRepo(t *testing.T) *database.ComplaintsRepository {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))

	return database.NewComplaintsRepository(db)
}

func testComplaint(id, sourceID string, createdAt time.Time) *domain.Complaint {
	return &domain.Complaint{
		ID:                 id,
		Title:              "Massive pothole on the main road",
		Description:        "Two-wheelers keep falling into it.",
		Department:         domain.DepartmentPWD,
		DepartmentFullName: "Public Works Department",
		Urgency:            domain.UrgencyHigh,
		Confidence:         85,
		Status:             domain.StatusOpen,
		Location:           "Janakpuri",
		Latitude:           28.6219,
		Longitude:          77.0878,
		Geocoded:           true,
		SourceType:         "reddit",
		SourceHandle:       "concerned_citizen",
		SourceID:           sourceID,
		SourceLink:         "https://www.reddit.com/r/delhi/comments/abc123",
		CreatedAt:          createdAt,
		UpdatedAt:          createdAt,
	}
}

func TestComplaintsRepository_Insert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	inserted, err := repo.Insert(ctx, testComplaint("DLH-20260301-aaa111", "t3_post1", now))
	require.NoError(t, err)
	require.True(t, inserted, "first insert must report inserted")

	// Same source post again: silently skipped, not an error.
	inserted, err = repo.Insert(ctx, testComplaint("DLH-20260301-bbb222", "t3_post1", now))
	require.NoError(t, err)
	require.False(t, inserted, "duplicate source id must not insert")
}

func TestComplaintsRepository_Insert_EmptySourceIDNeverConflicts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i, id := range []string{"DLH-20260301-ccc333", "DLH-20260301-ddd444"} {
		inserted, err := repo.Insert(ctx, testComplaint(id, "", now.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
		require.True(t, inserted, "insert %s with empty source id must succeed", id)
	}
}

func TestComplaintsRepository_ExistsBySourceID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, testComplaint("DLH-20260301-eee555", "t3_post2", time.Now().UTC()))
	require.NoError(t, err)

	exists, err := repo.ExistsBySourceID(ctx, "t3_post2")
	require.NoError(t, err)
	require.True(t, exists, "expected existing source id to be found")

	exists, err = repo.ExistsBySourceID(ctx, "t3_never_seen")
	require.NoError(t, err)
	require.False(t, exists, "unknown source id must not exist")

	// Empty source ids are not dedupable.
	exists, err = repo.ExistsBySourceID(ctx, "")
	require.NoError(t, err)
	require.False(t, exists, "empty source id must never be treated as existing")
}

func TestComplaintsRepository_UpdateNotificationFlags(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, testComplaint("DLH-20260301-fff666", "t3_post3", time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateNotificationFlags(ctx, "DLH-20260301-fff666", true, false))

	got, err := repo.GetByID(ctx, "DLH-20260301-fff666")
	require.NoError(t, err)
	require.True(t, got.AuthorityNotified)
	require.False(t, got.CitizenNotified)

	err = repo.UpdateNotificationFlags(ctx, "DLH-00000000-000000", true, true)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplaintsRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "DLH-00000000-000000")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplaintsRepository_ListRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	ids := []string{"DLH-20260301-g0001", "DLH-20260301-g0002", "DLH-20260301-g0003"}
	for i, id := range ids {
		c := testComplaint(id, "", base.Add(time.Duration(i)*time.Minute))
		_, err := repo.Insert(ctx, c)
		require.NoError(t, err)
	}

	complaints, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, complaints, 2)
	require.Equal(t, ids[2], complaints[0].ID, "newest first")
	require.Equal(t, ids[1], complaints[1].ID)
}
