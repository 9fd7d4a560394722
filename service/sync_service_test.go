package service

import (
	"errors"
	"testing"

	"luxemarket/models"
)

func TestSyncVariantImages(t *testing.T) {
	f := newFixture(t)
	drive := &fakeDrive{assets: []models.VariantImageAsset{
		{DriveFileID: "a", FileName: "2_Silver.jpg", ProductID: 2, Color: "silver", ImageURL: "https://drive.google.com/uc?id=a"},
		{DriveFileID: "b", FileName: "2_Gold.jpg", ProductID: 2, Color: "Gold", ImageURL: "https://drive.google.com/uc?id=b"},
		{DriveFileID: "c", FileName: "99_Red.jpg", ProductID: 99, Color: "Red", ImageURL: "https://drive.google.com/uc?id=c"},
	}}
	sync := NewSyncService(drive, f.products)

	stats, err := sync.SyncVariantImages(f.ctx, "folder")
	if err != nil {
		t.Fatalf("SyncVariantImages: %v", err)
	}
	if stats.Total != 3 || stats.Inserted != 2 || stats.Skipped != 1 {
		t.Errorf("stats = %+v", stats)
	}

	p, err := f.products.GetByID(f.ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	gold := p.VariantImages["Gold"]
	if len(gold) != 2 || gold[0] != "/static/products/aurelia-gold.jpg" || gold[1] != "https://drive.google.com/uc?id=b" {
		t.Errorf("Gold variants = %v, existing order must be kept", gold)
	}
	if len(p.VariantImages["Silver"]) != 1 {
		t.Errorf("Silver variants = %v", p.VariantImages)
	}

	again, err := sync.SyncVariantImages(f.ctx, "folder")
	if err != nil {
		t.Fatal(err)
	}
	if again.Inserted != 0 || again.Skipped != 3 {
		t.Errorf("second sync = %+v, want everything skipped", again)
	}
}

func TestSyncVariantImagesListError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("quota exceeded")
	sync := NewSyncService(&fakeDrive{listErr: boom}, f.products)

	if _, err := sync.SyncVariantImages(f.ctx, "folder"); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}
