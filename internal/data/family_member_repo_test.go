package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/testutil"
)

func TestFamilyMemberRepo_CreateWithLinks(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewFamilyMemberRepo(db)

		c1 := createTestClient(t, db)
		c2 := createTestClient(t, db)

		authID := fmt.Sprintf("auth-%d", time.Now().UnixNano())
		fm, err := repo.Create(ctx, &model.CreateFamilyMemberRequest{
			AuthUserID: authID,
			Email:      fmt.Sprintf("fam-%d@example.com", time.Now().UnixNano()),
			FirstName:  "Jalloh",
			LastName:   "Sesay",
			ClientIDs:  []string{c1.ID, c2.ID},
		})
		require.NoError(t, err)
		require.NotEmpty(t, fm.ID)

		// directory lookup by the identity that owns the account
		got, err := repo.GetByAuthUserID(ctx, authID)
		require.NoError(t, err)
		assert.Equal(t, fm.ID, got.ID)

		ids, err := repo.LinkedClientIDs(ctx, fm.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{c1.ID, c2.ID}, ids)
	})
}

func TestFamilyMemberRepo_Create_RequiresLinkedClient(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewFamilyMemberRepo(db)
		_, err := repo.Create(context.Background(), &model.CreateFamilyMemberRequest{
			AuthUserID: "auth-x",
			Email:      "no-links@example.com",
			FirstName:  "No",
			LastName:   "Links",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestFamilyMemberRepo_ReplaceClientLinks(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewFamilyMemberRepo(db)

		c1 := createTestClient(t, db)
		c2 := createTestClient(t, db)
		c3 := createTestClient(t, db)

		fm, err := repo.Create(ctx, &model.CreateFamilyMemberRequest{
			AuthUserID: fmt.Sprintf("auth-%d", time.Now().UnixNano()),
			Email:      fmt.Sprintf("links-%d@example.com", time.Now().UnixNano()),
			FirstName:  "Fatu",
			LastName:   "Kamara",
			ClientIDs:  []string{c1.ID},
		})
		require.NoError(t, err)

		err = repo.ReplaceClientLinks(ctx, fm.ID, model.UpdateFamilyMemberLinksRequest{
			ClientIDs: []string{c2.ID, c3.ID},
		})
		require.NoError(t, err)

		ids, err := repo.LinkedClientIDs(ctx, fm.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{c2.ID, c3.ID}, ids)

		// unknown family member
		err = repo.ReplaceClientLinks(ctx, "00000000-0000-0000-0000-000000000000",
			model.UpdateFamilyMemberLinksRequest{ClientIDs: []string{c1.ID}})
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestFamilyMemberRepo_DeleteCascadesLinks(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewFamilyMemberRepo(db)

		c := createTestClient(t, db)
		fm, err := repo.Create(ctx, &model.CreateFamilyMemberRequest{
			AuthUserID: fmt.Sprintf("auth-%d", time.Now().UnixNano()),
			Email:      fmt.Sprintf("del-%d@example.com", time.Now().UnixNano()),
			FirstName:  "Del",
			LastName:   "Gone",
			ClientIDs:  []string{c.ID},
		})
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, fm.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		var count int
		err = db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM family_member_clients WHERE family_member_id = $1", fm.ID,
		).Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
