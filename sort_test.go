package msca

import (
	"reflect"
	"testing"
)

func TestSortVersions_AscDesc(t *testing.T) {
	t.Parallel()

	in := []string{"1.2.3", "1.10.0", "junk", "1.2.10", "1.2.3-alpha"}

	gotAsc := SortVersions(in, SortAsc, true)
	wantAsc := []string{"1.2.3-alpha", "1.2.3", "1.2.10", "1.10.0"}
	if !reflect.DeepEqual(gotAsc, wantAsc) {
		t.Fatalf("SortVersions asc got %v; want %v", gotAsc, wantAsc)
	}

	gotDesc := SortVersions(in, SortDesc, true)
	wantDesc := []string{"1.10.0", "1.2.10", "1.2.3", "1.2.3-alpha"}
	if !reflect.DeepEqual(gotDesc, wantDesc) {
		t.Fatalf("SortVersions desc got %v; want %v", gotDesc, wantDesc)
	}
}

func TestSortVersions_StableOnly(t *testing.T) {
	t.Parallel()

	got := SortVersions([]string{"2.0.0-rc1", "1.0", "1.5"}, SortDesc, false)
	want := []string{"1.5", "1.0"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stable only got %v; want %v", got, want)
	}
}

func TestSortVersions_NoneKeepsOrder(t *testing.T) {
	t.Parallel()

	got := SortVersions([]string{"3", "x", "1", "2"}, SortNone, false)
	want := []string{"3", "1", "2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("none got %v; want %v", got, want)
	}
}

func TestSortVersionsN(t *testing.T) {
	t.Parallel()

	got := SortVersionsN([]string{"1", "3", "2"}, SortDesc, false, 2)
	want := []string{"3", "2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortVersionsN got %v; want %v", got, want)
	}
}
