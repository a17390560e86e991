package repos

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/repos/testutil"
)

func TestOutputConfigRepoUpsert(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	ctx := context.Background()
	repo := NewOutputConfigRepo(conn, testutil.Logger(t))

	p := testutil.SeedProject(t, ctx, tx, "outputconfigrepo-test")

	got, err := repo.GetByProjectID(ctx, tx, p.ID)
	if err != nil || got != nil {
		t.Fatalf("GetByProjectID before upsert: got=%v err=%v", got, err)
	}

	created, err := repo.Upsert(ctx, tx, &domain.OutputConfig{
		ProjectID:    p.ID,
		IncludedKeys: datatypes.JSON([]byte(`["viscosity_cps","ph"]`)),
	})
	if err != nil {
		t.Fatalf("Upsert create: %v", err)
	}

	got, err = repo.GetByProjectID(ctx, tx, p.ID)
	if err != nil || got == nil || got.ID != created.ID {
		t.Fatalf("GetByProjectID after create: got=%v err=%v", got, err)
	}
	if string(got.IncludedKeys) != `["viscosity_cps","ph"]` {
		t.Fatalf("IncludedKeys after create: got=%s", got.IncludedKeys)
	}

	// A second upsert replaces the key list on the same row.
	replaced, err := repo.Upsert(ctx, tx, &domain.OutputConfig{
		ProjectID:    p.ID,
		IncludedKeys: datatypes.JSON([]byte(`["peel_strength"]`)),
	})
	if err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}
	if replaced.ID != created.ID {
		t.Fatalf("Upsert replace: new row %s, want reuse of %s", replaced.ID, created.ID)
	}

	got, err = repo.GetByProjectID(ctx, tx, p.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByProjectID after replace: got=%v err=%v", got, err)
	}
	if string(got.IncludedKeys) != `["peel_strength"]` {
		t.Fatalf("IncludedKeys after replace: got=%s", got.IncludedKeys)
	}

	if err := repo.DeleteByProjectID(ctx, tx, p.ID); err != nil {
		t.Fatalf("DeleteByProjectID: %v", err)
	}
	got, err = repo.GetByProjectID(ctx, tx, p.ID)
	if err != nil || got != nil {
		t.Fatalf("GetByProjectID after delete: got=%v err=%v", got, err)
	}
}
