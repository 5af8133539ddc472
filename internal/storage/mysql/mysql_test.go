package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
)

var testDB *sql.DB

// Integration tests need a MySQL with the planning schema loaded; point
// MURP_TEST_DSN at it. Without the env var every test here skips.
func TestMain(m *testing.M) {
	dsn := os.Getenv("MURP_TEST_DSN")
	if dsn != "" {
		var err error
		testDB, err = sql.Open("mysql", dsn)
		if err != nil {
			panic(fmt.Errorf("open test db: %w", err))
		}
		if err := testDB.Ping(); err != nil {
			panic(fmt.Errorf("ping test db: %w", err))
		}
	}

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

func testStorage(t *testing.T) *Storage {
	t.Helper()
	if testDB == nil {
		t.Skip("MURP_TEST_DSN is not set")
	}
	return &Storage{db: testDB}
}

func TestGetBOMLines_OrderedByLineNo(t *testing.T) {
	s := testStorage(t)

	lines, err := s.GetBOMLines(context.Background())
	if err != nil {
		t.Fatalf("GetBOMLines: %v", err)
	}

	lastGood, lastNo := "", 0
	for _, line := range lines {
		if line.FinishedGoodSKU == lastGood && line.LineNo < lastNo {
			t.Errorf("bom lines of %s out of order: %d after %d", line.FinishedGoodSKU, line.LineNo, lastNo)
		}
		lastGood, lastNo = line.FinishedGoodSKU, line.LineNo
	}
}

func TestGetStockLevels_NoNegatives(t *testing.T) {
	s := testStorage(t)

	levels, err := s.GetStockLevels(context.Background())
	if err != nil {
		t.Fatalf("GetStockLevels: %v", err)
	}

	for sku, lvl := range levels {
		if lvl.OnHand.Sign() < 0 || lvl.OnOrder.Sign() < 0 {
			t.Errorf("%s: negative stock in DB: on_hand=%s on_order=%s", sku, lvl.OnHand, lvl.OnOrder)
		}
	}
}
