package adminclient

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeScope struct {
	server    []string
	commits   [][]string
	commitErr error
	fetchErr  error
}

func (f *fakeScope) fetch(context.Context) ([]string, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]string(nil), f.server...), nil
}

func (f *fakeScope) commit(_ context.Context, ids []string) error {
	f.commits = append(f.commits, ids)
	if f.commitErr != nil {
		return f.commitErr
	}
	f.server = append([]string(nil), ids...)
	return nil
}

func newView(t *testing.T, f *fakeScope) *OrderedView[string, string] {
	t.Helper()
	v := NewOrderedView(func(s string) string { return s }, f.fetch, f.commit)
	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return v
}

func TestMoved(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 3, []string{"b", "c", "d", "a"}},
		{3, 0, []string{"d", "a", "b", "c"}},
		{1, 2, []string{"a", "c", "b", "d"}},
		{2, 1, []string{"a", "c", "b", "d"}},
	}
	for _, tt := range tests {
		if got := moved(in, tt.from, tt.to); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("moved(%d,%d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
	if !reflect.DeepEqual(in, []string{"a", "b", "c", "d"}) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestMove_CommitsCompleteList(t *testing.T) {
	f := &fakeScope{server: []string{"a", "b", "c"}}
	v := newView(t, f)

	if err := v.Move(context.Background(), 0, 2); err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := []string{"b", "c", "a"}
	if !reflect.DeepEqual(v.Items(), want) {
		t.Errorf("Items = %v, want %v", v.Items(), want)
	}
	if len(f.commits) != 1 || !reflect.DeepEqual(f.commits[0], want) {
		t.Errorf("commits = %v", f.commits)
	}
}

func TestMove_SameIndexIsNoop(t *testing.T) {
	f := &fakeScope{server: []string{"a", "b"}}
	v := newView(t, f)
	if err := v.Move(context.Background(), 1, 1); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if len(f.commits) != 0 {
		t.Errorf("unexpected commit %v", f.commits)
	}
}

func TestMove_OutOfRange(t *testing.T) {
	f := &fakeScope{server: []string{"a", "b"}}
	v := newView(t, f)
	for _, mv := range [][2]int{{-1, 0}, {0, 2}, {2, 0}} {
		if err := v.Move(context.Background(), mv[0], mv[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Move(%d,%d) = %v, want ErrIndexOutOfRange", mv[0], mv[1], err)
		}
	}
}

func TestMove_FailureReloadsServerOrder(t *testing.T) {
	f := &fakeScope{server: []string{"a", "b", "c"}}
	v := newView(t, f)

	// Someone else reordered meanwhile; our commit is refused.
	f.server = []string{"c", "a", "b"}
	f.commitErr = &APIError{Status: 409, Message: "Concurrent modification"}

	err := v.Move(context.Background(), 0, 1)
	if !IsStatus(err, 409) {
		t.Fatalf("Move error = %v, want the 409", err)
	}
	if want := []string{"c", "a", "b"}; !reflect.DeepEqual(v.Items(), want) {
		t.Errorf("Items = %v, want server order %v", v.Items(), want)
	}
}

func TestMove_FailureWithFailedReloadRestoresSnapshot(t *testing.T) {
	f := &fakeScope{server: []string{"a", "b", "c"}}
	v := newView(t, f)

	f.commitErr = errors.New("network down")
	f.fetchErr = errors.New("still down")

	err := v.Move(context.Background(), 2, 0)
	if err == nil || !errors.Is(err, f.commitErr) || !errors.Is(err, f.fetchErr) {
		t.Fatalf("Move error = %v, want both failures", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(v.Items(), want) {
		t.Errorf("Items = %v, want pre-move %v", v.Items(), want)
	}
}
