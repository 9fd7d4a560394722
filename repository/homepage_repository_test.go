package repository

import (
	"context"
	"reflect"
	"testing"

	"luxemarket/models"
	"luxemarket/storage"
)

func TestHomepageOrder(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewHomepageRepository(store, nil)
	ctx := context.Background()

	empty, err := repo.Get(ctx)
	if err != nil || len(empty) != 0 {
		t.Fatalf("Get = %v, %v", empty, err)
	}

	got, err := repo.Set(ctx, []int{5, 2, 5, -1, 0, 9})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []int{5, 2, 9}) {
		t.Errorf("Set = %v", got)
	}
	stored, _ := repo.Get(ctx)
	if !reflect.DeepEqual(stored, []int{5, 2, 9}) {
		t.Errorf("Get = %v", stored)
	}
}

func TestOrderProducts(t *testing.T) {
	products := []models.Product{{ID: 4}, {ID: 1}, {ID: 3}, {ID: 2}}
	got := OrderProducts(products, []int{3, 99, 1})

	ids := make([]int, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	if !reflect.DeepEqual(ids, []int{3, 1, 2, 4}) {
		t.Errorf("order = %v", ids)
	}
}
