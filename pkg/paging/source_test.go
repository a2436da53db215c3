package paging

import (
	"context"
	"testing"
)

func TestSliceSource(t *testing.T) {
	src := NewSliceSource([]int{0, 1, 2, 3, 4})
	key := func(k int) *int { return &k }

	tests := []struct {
		name    string
		params  LoadParams[int]
		want    []int
		nextKey *int
	}{
		{"first page", LoadParams[int]{LoadSize: 2}, []int{0, 1}, key(2)},
		{"middle page", LoadParams[int]{Key: key(2), LoadSize: 2}, []int{2, 3}, key(4)},
		{"last page", LoadParams[int]{Key: key(4), LoadSize: 2}, []int{4}, nil},
		{"exact end", LoadParams[int]{Key: key(3), LoadSize: 2}, []int{3, 4}, nil},
		{"past end", LoadParams[int]{Key: key(9), LoadSize: 2}, []int{}, nil},
		{"zero size", LoadParams[int]{LoadSize: 0}, []int{0}, key(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := src.Load(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(res.Items) != len(tt.want) {
				t.Fatalf("Items = %v, want %v", res.Items, tt.want)
			}
			for i := range tt.want {
				if res.Items[i] != tt.want[i] {
					t.Errorf("Items[%d] = %d, want %d", i, res.Items[i], tt.want[i])
				}
			}
			switch {
			case tt.nextKey == nil && res.NextKey != nil:
				t.Errorf("NextKey = %d, want nil", *res.NextKey)
			case tt.nextKey != nil && res.NextKey == nil:
				t.Errorf("NextKey = nil, want %d", *tt.nextKey)
			case tt.nextKey != nil && *res.NextKey != *tt.nextKey:
				t.Errorf("NextKey = %d, want %d", *res.NextKey, *tt.nextKey)
			}
		})
	}
}

func TestSliceSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSliceSource([]int{1}).Load(ctx, LoadParams[int]{LoadSize: 1}); err == nil {
		t.Error("Load() with cancelled context should fail")
	}
}
