package main

import (
	"fmt"
	"log"

	"gorm.io/datatypes"

	"github.com/festiloc/festiloc-server/internal/catalog"
	"github.com/festiloc/festiloc-server/internal/config"
	"github.com/festiloc/festiloc-server/internal/database"
	"github.com/festiloc/festiloc-server/internal/models"
)

func main() {
	fmt.Println("🌱 Festiloc Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	err = db.AutoMigrate(
		&models.Product{},
		&models.Package{},
		&models.PackageItem{},
		&models.PackageOption{},
		&models.OptionChoice{},
		&models.Realization{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		fmt.Printf("⚠️  Database already has %d products. Clear it first? (y/N): ", productCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}
		db.Exec("DELETE FROM package_items")
		db.Exec("DELETE FROM option_choices")
		db.Exec("DELETE FROM package_options")
		db.Exec("DELETE FROM packages")
		db.Exec("DELETE FROM products")
	}

	products := []models.Product{
		{
			Name: "Chaise pliante blanche", Slug: "chaise-pliante-blanche",
			Category: "mobilier", SubCategory: "chaises", SubSubCategory: "pliantes",
			PriceHT: 2.50, Stock: 400,
			Colors: datatypes.JSONSlice[string]{"blanc"},
			Specs: datatypes.NewJSONType(map[string]string{
				"matiere": "resine", "hauteur": "85cm", "pliable": "oui",
			}),
			Available: true,
		},
		{
			Name: "Chaise Napoléon III dorée", Slug: "chaise-napoleon-doree",
			Category: "mobilier", SubCategory: "chaises", SubSubCategory: "napoleon",
			PriceHT: 4.20, Stock: 250,
			Colors: datatypes.JSONSlice[string]{"doré", "blanc"},
			Specs: datatypes.NewJSONType(map[string]string{
				"matiere": "bois", "hauteur": "90cm", "pliable": "non",
			}),
			Available: true,
		},
		{
			Name: "Table ronde 8 personnes", Slug: "table-ronde-8p",
			Category: "mobilier", SubCategory: "tables", SubSubCategory: "rondes",
			PriceHT: 9.00, Stock: 60,
			Specs: datatypes.NewJSONType(map[string]string{
				"matiere": "bois", "diametre": "152cm", "pliable": "oui",
			}),
			Available: true,
		},
		{
			Name: "Table buffet rectangulaire", Slug: "table-buffet",
			Category: "mobilier", SubCategory: "tables", SubSubCategory: "buffet",
			PriceHT: 8.00, Stock: 80,
			Specs: datatypes.NewJSONType(map[string]string{
				"matiere": "resine", "longueur": "183cm", "pliable": "oui",
			}),
			Available: true,
		},
		{
			Name: "Nappe ronde blanche", Slug: "nappe-ronde-blanche",
			Category: "textile", SubCategory: "nappes",
			PriceHT: 6.00, Stock: 120,
			Colors:    datatypes.JSONSlice[string]{"blanc", "ivoire"},
			Available: true,
		},
		{
			Name: "Housse de chaise avec nœud", Slug: "housse-chaise-noeud",
			Category: "textile", SubCategory: "housses",
			PriceHT: 1.80, Stock: 500,
			Colors:    datatypes.JSONSlice[string]{"blanc", "noir", "bordeaux"},
			Available: true,
		},
	}

	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create product %s: %v", products[i].Slug, err)
		}
	}
	fmt.Printf("✅ Created %d products\n", len(products))

	pkg := models.Package{
		Name: "Pack mariage 50 invités", Slug: "pack-mariage-50",
		Description: "Tables rondes, chaises Napoléon et nappage pour 50 invités.",
		DiscountPct: 10,
		Published:   true,
		Items: []models.PackageItem{
			{ProductID: products[1].ID, Quantity: 50, Required: true, Position: 0},
			{ProductID: products[2].ID, Quantity: 7, Required: true, Position: 1},
			{ProductID: products[4].ID, Quantity: 7, Required: true, Position: 2},
			{ProductID: products[5].ID, Quantity: 50, Required: false, Customizable: true, Position: 3},
		},
		Options: []models.PackageOption{
			{
				Name: "Couleur des housses",
				Choices: []models.OptionChoice{
					{Label: "Blanc", PriceDelta: 0},
					{Label: "Bordeaux", PriceDelta: 15},
				},
			},
		},
	}

	lookup := make(map[string]models.Product, len(products))
	for _, p := range products {
		lookup[p.ID] = p
	}
	catalog.ApplyTotals(&pkg, catalog.ComputeTotals(pkg.Items, lookup, pkg.DiscountPct))

	if err := db.Create(&pkg).Error; err != nil {
		log.Fatalf("❌ Failed to create package: %v", err)
	}
	fmt.Printf("✅ Created package %q (%.2f EUR TTC after discount)\n", pkg.Name, pkg.FinalTotalTTC)

	fmt.Println("🌱 Done.")
}
