package storage

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/model"
)

func newMemoryStore(t *testing.T) (*Store, *MemorySlot) {
	t.Helper()
	slot := NewMemorySlot()
	store, err := NewStore(slot, nil)
	require.NoError(t, err)
	return store, slot
}

func sampleData() model.Data {
	d := model.DefaultData()
	d.Lists = append(d.Lists, model.List{ID: "home-projects", Name: "Home Projects", Type: model.ListCustom})
	d.Tasks = []model.Task{
		{ID: 3, Text: "Buy milk", Priority: model.PriorityHigh, Date: "2025-03-10"},
		{ID: 2, Text: "Paint shed", Priority: model.PriorityLow, ListID: "home-projects"},
		{ID: 1, Text: "Stand-up", Priority: model.PriorityMedium, Completed: true, ListID: model.TodayID, Date: "2025-03-09"},
	}
	return d
}

func TestLoadMissingRecordSeedsDefaults(t *testing.T) {
	store, _ := newMemoryStore(t)
	assert.Equal(t, model.DefaultData(), store.Load(context.Background()))
}

func TestLoadCorruptRecordSeedsDefaults(t *testing.T) {
	cases := map[string]string{
		"not json":          `{lists:`,
		"wrong shape":       `[1,2,3]`,
		"missing tasks":     `{"lists":[{"id":"today","name":"Today","type":"system"}]}`,
		"bad priority":      `{"lists":[{"id":"today","name":"Today","type":"system"}],"tasks":[{"id":1,"text":"x","priority":"urgent","completed":false,"listId":"today"}]}`,
		"no list or date":   `{"lists":[{"id":"today","name":"Today","type":"system"}],"tasks":[{"id":1,"text":"x","priority":"low","completed":false}]}`,
		"impossible date":   `{"lists":[{"id":"today","name":"Today","type":"system"}],"tasks":[{"id":1,"text":"x","priority":"low","completed":false,"date":"2025-02-30"}]}`,
		"no system list":    `{"lists":[{"id":"work","name":"Work","type":"custom"}],"tasks":[]}`,
		"null":              `null`,
		"empty string":      ``,
		"string id on task": `{"lists":[{"id":"today","name":"Today","type":"system"}],"tasks":[{"id":"a","text":"x","priority":"low","completed":false,"listId":"today"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store, slot := newMemoryStore(t)
			require.NoError(t, slot.Put(context.Background(), RecordKey, []byte(raw)))
			assert.Equal(t, model.DefaultData(), store.Load(context.Background()))
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, slot := newMemoryStore(t)
	want := sampleData()

	require.NoError(t, store.Save(ctx, want))
	got := store.Load(ctx)
	assert.Equal(t, want, got)

	first, _, err := slot.Get(ctx, RecordKey)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, store.Load(ctx)))
	second, _, err := slot.Get(ctx, RecordKey)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestEncodeLayout(t *testing.T) {
	d := model.DefaultData()
	d.Tasks = []model.Task{{ID: 7, Text: "Buy milk", Priority: model.PriorityHigh, Date: "2025-03-10"}}

	raw, err := Encode(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"lists": [
			{"id":"today","name":"Today","type":"system"},
			{"id":"expenditures","name":"Expenditures","type":"custom"},
			{"id":"work","name":"Work","type":"custom"}
		],
		"tasks": [
			{"id":7,"text":"Buy milk","priority":"high","completed":false,"date":"2025-03-10"}
		]
	}`, string(raw))
}

func TestEncodeNilTasks(t *testing.T) {
	raw, err := Encode(model.Data{Lists: model.DefaultData().Lists})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tasks":[]`)
}

func TestSQLiteSlot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "planner.db")

	slot, err := OpenSQLite(path)
	require.NoError(t, err)

	_, ok, err := slot.Get(ctx, RecordKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Put(ctx, RecordKey, []byte("one")))
	require.NoError(t, slot.Put(ctx, RecordKey, []byte("two")))
	got, ok, err := slot.Get(ctx, RecordKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", string(got))
	require.NoError(t, slot.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, ok, err = reopened.Get(ctx, RecordKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", string(got))
}

func TestSQLiteStorePersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "planner.db")

	slot, err := OpenSQLite(path)
	require.NoError(t, err)
	store, err := NewStore(slot, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleData()))
	require.NoError(t, store.Close())

	slot, err = OpenSQLite(path)
	require.NoError(t, err)
	store, err = NewStore(slot, nil)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, sampleData(), store.Load(ctx))
}

func TestOpenSQLiteRejectsEmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:memdb?mode=memory", sqliteDSN("file:memdb?mode=memory"))
	dsn := sqliteDSN("/tmp/planner.db")
	assert.Contains(t, dsn, "file:///tmp/planner.db?")
	assert.Contains(t, dsn, "mode=rwc")

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, []string{"busy_timeout(5000)", "journal_mode(WAL)", "synchronous(NORMAL)"}, u.Query()["_pragma"])
}

func TestOpenSQLiteRejectsBlankPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}

func TestSQLiteSlotCloseTwice(t *testing.T) {
	slot, err := OpenSQLite(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	require.NoError(t, slot.Close())
	assert.NoError(t, slot.Close())
}
