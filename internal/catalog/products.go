package catalog

// Category names.
const (
	CategoryIndustrialFuels   = "Industrial Fuels"
	CategorySpecialtyProducts = "Specialty Products"
	CategoryOtherPortfolio    = "Other DS Portfolio"
)

// Default returns the compiled product catalog.
func Default() *Catalog {
	return &Catalog{
		Categories: []Category{
			{
				Name: CategoryIndustrialFuels,
				Products: []Product{
					{
						Code:     "MS",
						Name:     "Motor Spirit",
						Keywords: []string{"motor spirit", "petrol", "gasoline", "ms"},
						UseCases: []string{"automotive", "generators", "light vehicles"},
					},
					{
						Code:     "HSD",
						Name:     "High Speed Diesel",
						Keywords: []string{"diesel", "hsd", "high speed diesel"},
						UseCases: []string{"trucks", "buses", "generators", "heavy vehicles", "captive power"},
					},
					{
						Code:     "LDO",
						Name:     "Light Diesel Oil",
						Keywords: []string{"ldo", "light diesel", "light diesel oil"},
						UseCases: []string{"furnaces", "boilers", "kilns", "industrial heating"},
					},
					{
						Code:     "FO",
						Name:     "Furnace Oil",
						Keywords: []string{"furnace oil", "fo", "fuel oil", "heavy fuel"},
						UseCases: []string{"boilers", "furnaces", "power generation", "industrial heating", "captive power"},
					},
					{
						Code:     "LSHS",
						Name:     "Low Sulphur Heavy Stock",
						Keywords: []string{"lshs", "low sulphur", "heavy stock"},
						UseCases: []string{"power plants", "marine", "industrial boilers"},
					},
					{
						Code:     "SKO",
						Name:     "Superior Kerosene Oil",
						Keywords: []string{"kerosene", "sko", "superior kerosene"},
						UseCases: []string{"heating", "lighting", "industrial applications"},
					},
				},
			},
			{
				Name: CategorySpecialtyProducts,
				Products: []Product{
					{
						Code:     "Hexane",
						Name:     "Hexane",
						Keywords: []string{"hexane", "n-hexane"},
						UseCases: []string{"solvent extraction", "oil extraction", "edible oil", "vegetable oil extraction"},
					},
					{
						Code:     "Solvent 1425",
						Name:     "Solvent 1425",
						Keywords: []string{"solvent 1425", "solvent", "industrial solvent"},
						UseCases: []string{"paint", "coating", "printing ink", "adhesives"},
					},
					{
						Code:     "MTO",
						Name:     "Mineral Turpentine Oil",
						Keywords: []string{"turpentine", "mto", "mineral turpentine", "mto 2445"},
						UseCases: []string{"paint thinner", "solvent", "cleaning agent"},
					},
					{
						Code:     "JBO",
						Name:     "Jute Batch Oil",
						Keywords: []string{"jute batch oil", "jbo", "jute oil"},
						UseCases: []string{"jute processing", "jute mills", "textile"},
					},
				},
			},
			{
				Name: CategoryOtherPortfolio,
				Products: []Product{
					{
						Code:     "Bitumen",
						Name:     "Bitumen",
						Keywords: []string{"bitumen", "asphalt", "road construction"},
						UseCases: []string{"road construction", "highways", "infrastructure", "waterproofing"},
					},
					{
						Code:     "Marine Bunker Fuels",
						Name:     "Marine Bunker Fuels",
						Keywords: []string{"bunker", "marine fuel", "shipping fuel", "vessel fuel"},
						UseCases: []string{"shipping", "vessels", "maritime", "ports"},
					},
					{
						Code:     "Sulphur",
						Name:     "Sulphur",
						Keywords: []string{"sulphur", "sulfur", "molten sulphur"},
						UseCases: []string{"fertilizer", "chemical", "pharmaceutical"},
					},
					{
						Code:     "Propylene",
						Name:     "Propylene",
						Keywords: []string{"propylene", "propene"},
						UseCases: []string{"petrochemical", "plastic", "chemical manufacturing"},
					},
				},
			},
		},
		Industries: []IndustryMapping{
			{Industry: "power", Products: []string{"FO", "LSHS", "HSD", "LDO"}},
			{Industry: "chemicals", Products: []string{"FO", "LDO", "Hexane", "Solvent 1425", "Propylene"}},
			{Industry: "fertilizers", Products: []string{"FO", "Sulphur", "HSD"}},
			{Industry: "shipping", Products: []string{"Marine Bunker Fuels", "LSHS"}},
			{Industry: "mining", Products: []string{"HSD", "FO", "LDO"}},
			{Industry: "textile", Products: []string{"JBO", "FO", "LDO"}},
			{Industry: "jute", Products: []string{"JBO"}},
			{Industry: "edible_oil", Products: []string{"Hexane"}},
			{Industry: "paint", Products: []string{"Solvent 1425", "MTO"}},
			{Industry: "road_construction", Products: []string{"Bitumen", "HSD"}},
			{Industry: "steel", Products: []string{"FO", "LDO"}},
			{Industry: "cement", Products: []string{"FO", "LDO", "Bitumen"}},
		},
		Equipment: []EquipmentMapping{
			{Phrase: "boiler", Products: []string{"FO", "LDO", "LSHS"}},
			{Phrase: "furnace", Products: []string{"FO", "LDO"}},
			{Phrase: "genset", Products: []string{"HSD", "FO"}},
			{Phrase: "generator", Products: []string{"HSD", "FO"}},
			{Phrase: "captive power", Products: []string{"FO", "HSD", "LSHS"}},
			{Phrase: "diesel generator", Products: []string{"HSD"}},
			{Phrase: "power plant", Products: []string{"FO", "LSHS"}},
			{Phrase: "extraction plant", Products: []string{"Hexane"}},
			{Phrase: "jute mill", Products: []string{"JBO"}},
			{Phrase: "solvent plant", Products: []string{"Hexane", "Solvent 1425"}},
		},
		Vocabulary: []string{
			"furnace oil", "fo", "diesel", "hsd", "ldo", "lshs",
			"bitumen", "bunker", "hexane", "solvent", "sulphur",
			"propylene", "kerosene", "jute batch oil", "turpentine",
			"boiler", "generator", "power plant", "captive power",
		},
	}
}
