package state

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Missing(t *testing.T) {
	st, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != "" || st.StageIndex != 0 {
		t.Fatalf("expected empty state, got %+v", st)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	st := &State{RunID: "r1", Prompt: "a bakery site", StageCount: 4, Status: StatusRunning}
	st.Advance()
	st.Advance()
	if err := st.Save(dir); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(st, loaded); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestFail(t *testing.T) {
	st := &State{Status: StatusRunning}
	st.Fail(StatusFailed, errors.New("stage 2 refused"))
	if st.Status != StatusFailed || st.Error != "stage 2 refused" {
		t.Fatalf("got %+v", st)
	}
}
