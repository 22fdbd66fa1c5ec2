package world

// Molecule item names as they appear in the inventory.
const (
	ItemWater              = "H2O"
	ItemCO2                = "CO2"
	ItemBicarbonate        = "HCO3-"
	ItemAmmonia            = "NH3"
	ItemATP                = "ATP"
	ItemCarbamoylPhosphate = "Carbamoyl Phosphate"
	ItemOrnithine          = "Ornithine"
	ItemCitrulline         = "Citrulline"
	ItemAspartate          = "Aspartate"
	ItemArgininosuccinate  = "Argininosuccinate"
	ItemArginine           = "Arginine"
	ItemFumarate           = "Fumarate"
	ItemUrea               = "Urea"
)

// ItemColors gives every molecule a display color (hex RGB).
var ItemColors = map[string]string{
	ItemWater:              "#3fa7ff",
	ItemCO2:                "#9e9e9e",
	ItemBicarbonate:        "#7fdbda",
	ItemAmmonia:            "#b2ff59",
	ItemATP:                "#ffd740",
	ItemCarbamoylPhosphate: "#ff8a65",
	ItemOrnithine:          "#ce93d8",
	ItemCitrulline:         "#ff7043",
	ItemAspartate:          "#4db6ac",
	ItemArgininosuccinate:  "#9575cd",
	ItemArginine:           "#5c6bc0",
	ItemFumarate:           "#a1887f",
	ItemUrea:               "#ffffff",
}

// ColorOf returns the display color for item, defaulting to white.
func ColorOf(item string) string {
	if c, ok := ItemColors[item]; ok {
		return c
	}
	return "#ffffff"
}

// QuestGatedItems cannot be picked up before the quest has started.
var QuestGatedItems = map[string]bool{
	ItemCO2:                true,
	ItemBicarbonate:        true,
	ItemAmmonia:            true,
	ItemATP:                true,
	ItemCarbamoylPhosphate: true,
	ItemOrnithine:          true,
	ItemCitrulline:         true,
	ItemAspartate:          true,
	ItemArgininosuccinate:  true,
	ItemArginine:           true,
	ItemFumarate:           true,
	ItemUrea:               true,
}
