package item

import (
	"errors"
	"time"

	"gorm.io/plugin/soft_delete"
)

var (
	ErrNotFound = errors.New("item not found")
	// ErrConflict: the conditional stock update lost the race with another writer.
	ErrConflict     = errors.New("item modified concurrently")
	ErrBarcodeTaken = errors.New("barcode already in use")
)

type College string

const (
	CollegeEngineering College = "engineering"
	CollegeScience     College = "science"
	CollegeBusiness    College = "business"
	CollegeEducation   College = "education"
	CollegeNursing     College = "nursing"
)

type Category string

const (
	CategoryEquipment   Category = "equipment"
	CategorySupplies    Category = "supplies"
	CategoryFurniture   Category = "furniture"
	CategoryElectronics Category = "electronics"
	CategoryConsumable  Category = "consumable"
)

// Table: items
type Item struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier printed on the physical label
	Barcode     string   `gorm:"column:barcode;size:32;not null;uniqueIndex:ux_items_barcode_active"`
	DisplayName string   `gorm:"column:display_name;size:255;not null"`
	College     College  `gorm:"column:college;type:enum('engineering','science','business','education','nursing');not null"`
	Category    Category `gorm:"column:category;type:enum('equipment','supplies','furniture','electronics','consumable');not null"`
	Quantity    int64    `gorm:"column:quantity;not null"`
	// Bumped on every conditional write; stale versions lose.
	Version       int64          `gorm:"column:version;not null;default:0"`
	Supplier      string         `gorm:"column:supplier;size:255"`
	RequestedDate time.Time      `gorm:"column:requested_date;type:date"`
	ImageURL      string         `gorm:"column:image_url;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
	// Unix-seconds tombstone, 0 while live. Part of the barcode unique index so
	// a retired barcode can be issued again while live ones stay unique.
	DeletedAt soft_delete.DeletedAt `gorm:"column:deleted_at;uniqueIndex:ux_items_barcode_active"`
}

func (Item) TableName() string { return "items" }
