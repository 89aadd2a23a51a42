package atom

import "github.com/turtacn/chemsolver/internal/domain/locale"

// classNames maps each class to its display name per language.
var classNames = map[locale.Tag]map[ElementClass]string{
	locale.English: {
		ClassAlkalineMetal:      "Alkaline metals",
		ClassAlkalineEarthMetal: "Alkaline earth metals",
		ClassTransitionMetal:    "Transition metals",
		ClassNonmetal:           "Non metals",
		ClassSemimetal:          "Semimetals",
		ClassPBlockMetal:        "P-Block metals",
		ClassHalogen:            "Halogens",
		ClassNobleGas:           "Noble gasses",
		ClassLanthanide:         "Lanthanides",
		ClassActinide:           "Actinides",
	},
	locale.Italian: {
		ClassAlkalineMetal:      "Metalli alcalini",
		ClassAlkalineEarthMetal: "Metalli alcalino-terrosi",
		ClassTransitionMetal:    "Metalli di transizione",
		ClassNonmetal:           "Non metalli",
		ClassSemimetal:          "Semimetalli",
		ClassPBlockMetal:        "Metalli del blocco p",
		ClassHalogen:            "Alogeni",
		ClassNobleGas:           "Gas nobili",
		ClassLanthanide:         "Lantanidi",
		ClassActinide:           "Attinidi",
	},
}

// italianNames holds element names that differ from the English record.
var italianNames = map[string]string{
	"H": "Idrogeno", "He": "Elio", "Li": "Litio", "Be": "Berillio", "B": "Boro",
	"C": "Carbonio", "N": "Azoto", "O": "Ossigeno", "F": "Fluoro",
	"Na": "Sodio", "Mg": "Magnesio", "Al": "Alluminio", "Si": "Silicio",
	"P": "Fosforo", "S": "Zolfo", "Cl": "Cloro", "K": "Potassio", "Ca": "Calcio",
	"V": "Vanadio", "Fe": "Ferro", "Cu": "Rame", "Zn": "Zinco", "Br": "Bromo",
	"Kr": "Kripton", "Y": "Ittrio", "Zr": "Zirconio", "Ag": "Argento",
	"Sb": "Antimonio", "Te": "Tellurio", "I": "Iodio", "Ba": "Bario",
	"Eu": "Europio", "Pt": "Platino", "Tl": "Tallio", "Pb": "Piombo",
	"Th": "Torio", "Md": "Mendelevio",
}

// ClassName returns the display name of c in the given language, falling
// back to English and then to the machine key.
func ClassName(c ElementClass, tag locale.Tag) string {
	if n, ok := classNames[tag][c]; ok {
		return n
	}
	if n, ok := classNames[locale.English][c]; ok {
		return n
	}
	return c.String()
}

// DisplayName returns the element name in the given language.
func (a Atom) DisplayName(tag locale.Tag) string {
	if tag == locale.Italian {
		if n, ok := italianNames[a.Symbol]; ok {
			return n
		}
	}
	return a.Name
}

//Personal.AI order the ending
