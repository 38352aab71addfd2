// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/taibuivan/bookhub/pkg/slice"
)

func TestDistinct_KeepsFirstSeenOrder(t *testing.T) {
	got := slice.Distinct([]string{"Architecture", "Design", "Refactoring", "Design", "Architecture"})
	want := []string{"Architecture", "Design", "Refactoring"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Distinct() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_EmptyIsNonNil(t *testing.T) {
	got := slice.Filter([]int{1, 3, 5}, func(n int) bool { return n%2 == 0 })
	if got == nil || len(got) != 0 {
		t.Errorf("Filter() = %#v, want empty non-nil slice", got)
	}

	doubled := slice.Map([]int{1, 2}, func(n int) int { return n * 2 })
	if diff := cmp.Diff([]int{2, 4}, doubled); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}
