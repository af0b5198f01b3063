package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_ToSQL(t *testing.T) {
	sql, args, err := Select("id", "name", "jersey_number").
		From("players").
		Where(Eq("id", "p-1")).
		OrderBy("jersey_number ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT id, name, jersey_number FROM players WHERE id = $1 ORDER BY jersey_number ASC LIMIT 1"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"p-1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_RequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertInto_WithSuffix(t *testing.T) {
	sql, args, err := InsertInto("player_stats").
		Columns("player_id", "league", "goals").
		Values("p-1", "eafc", 5).
		Suffix("ON CONFLICT (player_id, league) DO UPDATE SET goals = EXCLUDED.goals").
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "INSERT INTO player_stats (player_id, league, goals) VALUES ($1, $2, $3) " +
		"ON CONFLICT (player_id, league) DO UPDATE SET goals = EXCLUDED.goals"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"p-1", "eafc", 5}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertInto_RejectsRaggedRows(t *testing.T) {
	_, _, err := InsertInto("players").
		Columns("id", "name").
		Values("p-1").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for ragged row")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PlayerID string `db:"player_id"`
		League   string `db:"league"`
		Goals    int    `db:"goals"`
		Ignored  string `db:"-"`
		hidden   string
	}
	_ = row{hidden: ""}

	sql, args, err := InsertModel("player_stats", row{PlayerID: "p-1", League: "eafc", Goals: 3}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}

	want := "INSERT INTO player_stats (player_id, league, goals) VALUES ($1, $2, $3)"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"p-1", "eafc", 3}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("players", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}
