package units

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// AliasTable maps normalized unit names (see Normalize) to canonical unit
// symbols. The zero value is an empty table. Tables are immutable once built
// and are safe for concurrent use.
type AliasTable struct {
	aliases map[string]string
}

// ErrInvalidAlias is wrapped by errors returned from NewAliasTable and
// AliasTable.Validate.
var ErrInvalidAlias = errors.New("invalid unit alias")

// Normalize lowercases s and strips spaces, producing an alias table key.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// NewAliasTable copies entries into a new table. Keys must already be
// normalized, and no two keys may normalize to the same value.
func NewAliasTable(entries map[string]string) (AliasTable, error) {
	t := AliasTable{aliases: make(map[string]string, len(entries))}
	var errs []error
	for alias, canonical := range entries {
		key := Normalize(alias)
		if key != alias {
			errs = append(
				errs,
				fmt.Errorf("%w: key %q is not normalized (expected %q)", ErrInvalidAlias, alias, key),
			)
			continue
		}
		if canonical == "" {
			errs = append(errs, fmt.Errorf("%w: key %q has an empty symbol", ErrInvalidAlias, alias))
			continue
		}
		t.aliases[key] = canonical
	}
	if len(errs) > 0 {
		return AliasTable{}, errors.Join(errs...)
	}
	return t, nil
}

// DefaultAliases returns the built-in alias table.
func DefaultAliases() AliasTable {
	t, err := NewAliasTable(defaultAliases)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup normalizes s and returns the canonical symbol it maps to.
func (t AliasTable) Lookup(s string) (string, bool) {
	canonical, ok := t.aliases[Normalize(s)]
	return canonical, ok
}

func (t AliasTable) Len() int {
	return len(t.aliases)
}

// Aliases returns the table's keys, sorted.
func (t AliasTable) Aliases() []string {
	keys := make([]string, 0, len(t.aliases))
	for k := range t.aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Owners returns the kinds with a unit whose symbol is the canonical value
// of alias. An alias like "hour" ("h") may belong to several kinds.
func (t AliasTable) Owners(alias string) []Kind {
	canonical, ok := t.Lookup(alias)
	if !ok {
		return nil
	}
	var kinds []Kind
	for _, k := range Kinds() {
		q, _ := Lookup(k)
		if _, found := q.Unit(canonical); found {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Validate checks that every alias resolves to a unit symbol of at least
// one kind. All failing entries are reported together.
func (t AliasTable) Validate() error {
	var errs []error
	for _, alias := range t.Aliases() {
		if len(t.Owners(alias)) == 0 {
			errs = append(
				errs,
				fmt.Errorf(
					"%w: %q maps to unknown unit symbol %q",
					ErrInvalidAlias,
					alias,
					t.aliases[alias],
				),
			)
		}
	}
	return errors.Join(errs...)
}

var defaultAliases = map[string]string{
	// Length
	"angstrom":          "Å",
	"angstroms":         "Å",
	"astronomicalunit":  "AU",
	"astronomicalunits": "AU",
	"centimeter":        "cm",
	"centimeters":       "cm",
	"chain":             "ch",
	"chains":            "ch",
	"datamile":          "DM",
	"datamiles":         "DM",
	"decameter":         "dam",
	"decameters":        "dam",
	"decimeter":         "dm",
	"decimeters":        "dm",
	"dtpica":            "pica",
	"dtpicas":           "pica",
	"dtppoint":          "pt",
	"dtppoints":         "pt",
	"fathom":            "ftm",
	"fathoms":           "ftm",
	"foot":              "ft",
	"feet":              "ft",
	"hand":              "h",
	"hands":             "h",
	"hectometer":        "hm",
	"hectometers":       "hm",
	"inch":              "in",
	"inches":            "in",
	"kilolightyear":     "kly",
	"kilolightyears":    "kly",
	"kilometer":         "km",
	"kilometers":        "km",
	"kiloparsec":        "kpc",
	"kiloparsecs":       "kpc",
	"lightyear":         "ly",
	"lightyears":        "ly",
	"megalightyear":     "Mly",
	"megalightyears":    "Mly",
	"megaparsec":        "Mpc",
	"megaparsecs":       "Mpc",
	"meter":             "m",
	"meters":            "m",
	"microinch":         "μin",
	"microinches":       "μin",
	"micrometer":        "μm",
	"micrometers":       "μm",
	"mil":               "mil",
	"mils":              "mil",
	"mile":              "mi",
	"miles":             "mi",
	"millimeter":        "mm",
	"millimeters":       "mm",
	"nanometer":         "nm",
	"nanometers":        "nm",
	"nauticalmile":      "NM",
	"nauticalmiles":     "NM",
	"parsec":            "pc",
	"parsecs":           "pc",
	"printerpica":       "pica(p)",
	"printerpicas":      "pica(p)",
	"printerpoint":      "pt(p)",
	"printerpoints":     "pt(p)",
	"shackle":           "shackle",
	"shackles":          "shackle",
	"solarradius":       "R☉",
	"solarradii":        "R☉",
	"twip":              "twip",
	"twips":             "twip",
	"ussurveyfoot":      "ftUS",
	"ussurveyfeet":      "ftUS",
	"yard":              "yd",
	"yards":             "yd",
	"kiloyard":          "kyd",
	"kiloyards":         "kyd",
	"megameter":         "Mm",
	"megameters":        "Mm",
	"picometer":         "pm",
	"picometers":        "pm",
	"gigameter":         "Gm",
	"gigameters":        "Gm",
	"kilofoot":          "kft",
	"kilofoots":         "kft",
	"femtometer":        "fm",
	"femtometers":       "fm",

	// Storage
	"bit":       "b",
	"bits":      "b",
	"byte":      "B",
	"bytes":     "B",
	"exabit":    "Eb",
	"exabits":   "Eb",
	"exabyte":   "EB",
	"exabytes":  "EB",
	"exbibit":   "Eib",
	"exbibits":  "Eib",
	"exbibyte":  "EiB",
	"exbibytes": "EiB",
	"gibibit":   "Gib",
	"gibibits":  "Gib",
	"gibibyte":  "GiB",
	"gibibytes": "GiB",
	"gigabit":   "Gb",
	"gigabits":  "Gb",
	"gigabyte":  "GB",
	"gigabytes": "GB",
	"kibibit":   "Kib",
	"kibibits":  "Kib",
	"kibibyte":  "KiB",
	"kibibytes": "KiB",
	"kilobit":   "kb",
	"kilobits":  "kb",
	"kilobyte":  "kB",
	"kilobytes": "kB",
	"mebibit":   "Mib",
	"mebibits":  "Mib",
	"mebibyte":  "MiB",
	"mebibytes": "MiB",
	"megabit":   "Mb",
	"megabits":  "Mb",
	"megabyte":  "MB",
	"megabytes": "MB",
	"pebibit":   "Pib",
	"pebibits":  "Pib",
	"pebibyte":  "PiB",
	"pebibytes": "PiB",
	"petabit":   "Pb",
	"petabits":  "Pb",
	"petabyte":  "PB",
	"petabytes": "PB",
	"tebibit":   "Tib",
	"tebibits":  "Tib",
	"tebibyte":  "TiB",
	"tebibytes": "TiB",
	"terabit":   "Tb",
	"terabits":  "Tb",
	"terabyte":  "TB",
	"terabytes": "TB",

	// Angle
	"arcminute":    "′",
	"arcminutes":   "′",
	"arcsecond":    "″",
	"arcseconds":   "″",
	"centiradian":  "crad",
	"centiradians": "crad",
	"deciradian":   "drad",
	"deciradians":  "drad",
	"degree":       "°",
	"degrees":      "°",
	"gradian":      "gon",
	"gradians":     "gon",
	"microdegree":  "μ°",
	"microdegrees": "μ°",
	"microradian":  "μrad",
	"microradians": "μrad",
	"millidegree":  "m°",
	"millidegrees": "m°",
	"milliradian":  "mrad",
	"milliradians": "mrad",
	"nanodegree":   "n°",
	"nanodegrees":  "n°",
	"nanoradian":   "nrad",
	"nanoradians":  "nrad",
	"natomil":      "mil",
	"natomils":     "mil",
	"radian":       "rad",
	"radians":      "rad",
	"revolution":   "rev",
	"revolutions":  "rev",

	// Mass
	"centigram":           "cg",
	"centigrams":          "cg",
	"decagram":            "dag",
	"decagrams":           "dag",
	"decigram":            "dg",
	"decigrams":           "dg",
	"earthmass":           "M⊕",
	"earthmasses":         "M⊕",
	"grain":               "gr",
	"grains":              "gr",
	"gram":                "g",
	"grams":               "g",
	"hectogram":           "hg",
	"hectograms":          "hg",
	"kilogram":            "kg",
	"kilograms":           "kg",
	"kilopound":           "klb",
	"kilopounds":          "klb",
	"kilotonne":           "kt",
	"kilotonnes":          "kt",
	"kiloton":             "kt",
	"kilotons":            "kt",
	"longhundredweight":   "lcwt",
	"longhundredweights":  "lcwt",
	"longton":             "LT",
	"longtons":            "LT",
	"megapound":           "Mlb",
	"megapounds":          "Mlb",
	"megatonne":           "Mt",
	"megatonnes":          "Mt",
	"megaton":             "Mt",
	"megatons":            "Mt",
	"microgram":           "μg",
	"micrograms":          "μg",
	"milligram":           "mg",
	"milligrams":          "mg",
	"nanogram":            "ng",
	"nanograms":           "ng",
	"ounce":               "oz",
	"ounces":              "oz",
	"pound":               "lb",
	"pounds":              "lb",
	"shorthundredweight":  "shcwt",
	"shorthundredweights": "shcwt",
	"shortton":            "short tn",
	"shorttons":           "short tn",
	"slug":                "slug",
	"slugs":               "slug",
	"solarmass":           "M☉",
	"solarmasses":         "M☉",
	"stone":               "st",
	"stones":              "st",
	"tonne":               "t",
	"tonnes":              "t",
	"ton":                 "t",
	"tons":                "t",
	"picogram":            "pg",
	"picograms":           "pg",
	"femtogram":           "fg",
	"femtograms":          "fg",
	"metricton":           "t",
	"metrictons":          "t",

	// Energy
	"britishthermalunit":      "BTU",
	"britishthermalunits":     "BTU",
	"calorie":                 "cal",
	"calories":                "cal",
	"decathermeec":            "dth(e)",
	"decathermeecs":           "dth(e)",
	"decathermimperial":       "dth(i)",
	"decathermimperials":      "dth(i)",
	"decathermus":             "dth",
	"decathermuses":           "dth",
	"electronvolt":            "eV",
	"electronvolts":           "eV",
	"erg":                     "erg",
	"ergs":                    "erg",
	"footpound":               "ft·lbf",
	"footpounds":              "ft·lbf",
	"gigabritishthermalunit":  "GBTU",
	"gigabritishthermalunits": "GBTU",
	"gigaelectronvolt":        "GeV",
	"gigaelectronvolts":       "GeV",
	"gigajoule":               "GJ",
	"gigajoules":              "GJ",
	"gigawattday":             "GWd",
	"gigawattdays":            "GWd",
	"gigawatthour":            "GWh",
	"gigawatthours":           "GWh",
	"horsepowerhour":          "hp·h",
	"horsepowerhours":         "hp·h",
	"joule":                   "J",
	"joules":                  "J",
	"kilobritishthermalunit":  "kBTU",
	"kilobritishthermalunits": "kBTU",
	"kilocalorie":             "kcal",
	"kilocalories":            "kcal",
	"kiloelectronvolt":        "keV",
	"kiloelectronvolts":       "keV",
	"kilojoule":               "kJ",
	"kilojoules":              "kJ",
	"kilowattday":             "kWd",
	"kilowattdays":            "kWd",
	"kilowatthour":            "kWh",
	"kilowatthours":           "kWh",
	"megabritishthermalunit":  "MBTU",
	"megabritishthermalunits": "MBTU",
	"megacalorie":             "Mcal",
	"megacalories":            "Mcal",
	"megaelectronvolt":        "MeV",
	"megaelectronvolts":       "MeV",
	"megajoule":               "MJ",
	"megajoules":              "MJ",
	"megawattday":             "MWd",
	"megawattdays":            "MWd",
	"megawatthour":            "MWh",
	"megawatthours":           "MWh",
	"millijoule":              "mJ",
	"millijoules":             "mJ",
	"teraelectronvolt":        "TeV",
	"teraelectronvolts":       "TeV",
	"terawattday":             "TWd",
	"terawattdays":            "TWd",
	"terawatthour":            "TWh",
	"terawatthours":           "TWh",
	"thermeec":                "therm(e)",
	"thermeecs":               "therm(e)",
	"thermimperial":           "therm(i)",
	"thermimperials":          "therm(i)",
	"thermus":                 "therm",
	"wattday":                 "Wd",
	"wattdays":                "Wd",
	"watthour":                "Wh",
	"watthours":               "Wh",
	"terajoule":               "TJ",
	"terajoules":              "TJ",
	"petajoule":               "PJ",
	"petajoules":              "PJ",
	"nanojoule":               "nJ",
	"nanojoules":              "nJ",
	"microjoule":              "μJ",
	"microjoules":             "μJ",
	"therms":                  "therm",

	// Speed
	"centimeterperhour":      "cm/h",
	"centimeterperhours":     "cm/h",
	"centimeterperminute":    "cm/min",
	"centimeterperminutes":   "cm/min",
	"centimeterpersecond":    "cm/s",
	"centimeterperseconds":   "cm/s",
	"decimeterperminute":     "dm/min",
	"decimeterperminutes":    "dm/min",
	"decimeterpersecond":     "dm/s",
	"decimeterperseconds":    "dm/s",
	"footperhour":            "ft/h",
	"footperhours":           "ft/h",
	"footperminute":          "ft/min",
	"footperminutes":         "ft/min",
	"footpersecond":          "ft/s",
	"footperseconds":         "ft/s",
	"inchperhour":            "in/h",
	"inchperhours":           "in/h",
	"inchperminute":          "in/min",
	"inchperminutes":         "in/min",
	"inchpersecond":          "in/s",
	"inchperseconds":         "in/s",
	"kilometerperhour":       "km/h",
	"kilometerperhours":      "km/h",
	"kilometerperminute":     "km/min",
	"kilometerperminutes":    "km/min",
	"kilometerpersecond":     "km/s",
	"kilometerperseconds":    "km/s",
	"knot":                   "kn",
	"knots":                  "kn",
	"meterperhour":           "m/h",
	"meterperhours":          "m/h",
	"meterperminute":         "m/min",
	"meterperminutes":        "m/min",
	"meterpersecond":         "m/s",
	"meterperseconds":        "m/s",
	"micrometerperminute":    "μm/min",
	"micrometerperminutes":   "μm/min",
	"micrometerpersecond":    "μm/s",
	"micrometerperseconds":   "μm/s",
	"mileperhour":            "mph",
	"mileperhours":           "mph",
	"millimeterperhour":      "mm/h",
	"millimeterperhours":     "mm/h",
	"millimeterperminute":    "mm/min",
	"millimeterperminutes":   "mm/min",
	"millimeterpersecond":    "mm/s",
	"millimeterperseconds":   "mm/s",
	"nanometerperminute":     "nm/min",
	"nanometerperminutes":    "nm/min",
	"nanometerpersecond":     "nm/s",
	"nanometerperseconds":    "nm/s",
	"ussurveyfootperhour":    "ftUS/h",
	"ussurveyfootperhours":   "ftUS/h",
	"ussurveyfootperminute":  "ftUS/min",
	"ussurveyfootperminutes": "ftUS/min",
	"ussurveyfootpersecond":  "ftUS/s",
	"ussurveyfootperseconds": "ftUS/s",
	"yardperhour":            "yd/h",
	"yardperhours":           "yd/h",
	"yardperminute":          "yd/min",
	"yardperminutes":         "yd/min",
	"yardpersecond":          "yd/s",
	"yardperseconds":         "yd/s",
	"mach":                   "Ma",
	"machs":                  "Ma",

	// Pressure
	"atmosphere":                        "atm",
	"atmospheres":                       "atm",
	"bar":                               "bar",
	"bars":                              "bar",
	"centibar":                          "cbar",
	"centibars":                         "cbar",
	"decapascal":                        "daPa",
	"decapascals":                       "daPa",
	"decibar":                           "dbar",
	"decibars":                          "dbar",
	"dynepersquarecentimeter":           "dyn/cm²",
	"dynepersquarecentimeters":          "dyn/cm²",
	"footofhead":                        "ft.head",
	"footofheads":                       "ft.head",
	"gigapascal":                        "GPa",
	"gigapascals":                       "GPa",
	"hectopascal":                       "hPa",
	"hectopascals":                      "hPa",
	"inchofmercury":                     "inHg",
	"inchofmercuries":                   "inHg",
	"inchofwatercolumn":                 "inH₂O",
	"inchofwatercolumns":                "inH₂O",
	"kilobar":                           "kbar",
	"kilobars":                          "kbar",
	"kilogramforcepersquarecentimeter":  "kgf/cm²",
	"kilogramforcepersquarecentimeters": "kgf/cm²",
	"kilopascal":                        "kPa",
	"kilopascals":                       "kPa",
	"megapascal":                        "MPa",
	"megapascals":                       "MPa",
	"milliinchofmercury":                "milli-inHg",
	"milliinchofmercuries":              "milli-inHg",
	"milliinchofwatercolumn":            "milli-inH₂O",
	"milliinchofwatercolumns":           "milli-inH₂O",
	"newtonspersquaremeter":             "N/m²",
	"newtonspersquaremeters":            "N/m²",
	"pascal":                            "Pa",
	"pascals":                           "Pa",
	"poundpersquarefoot":                "lb/ft²",
	"poundpersquarefeet":                "lb/ft²",
	"poundpersquareinch":                "lb/in²",
	"poundpersquareinches":              "lb/in²",
	"psia":                              "psia",
	"psias":                             "psia",
	"torr":                              "torr",
	"torrs":                             "torr",
	"millibar":                          "mbar",
	"millibars":                         "mbar",
	"millimeterofmercury":               "mmHg",
	"millimetersofmercury":              "mmHg",
	"psi":                               "psi",

	// Area
	"acre":              "acre",
	"acres":             "acre",
	"are":               "are",
	"ares":              "are",
	"centiare":          "c㎡",
	"centiares":         "c㎡",
	"hectare":           "ha",
	"hectares":          "ha",
	"squarecentimeter":  "cm²",
	"squarecentimeters": "cm²",
	"squaredecimeter":   "dm²",
	"squaredecimeters":  "dm²",
	"squarefoot":        "ft²",
	"squarefeet":        "ft²",
	"squareinch":        "in²",
	"squareinches":      "in²",
	"squarekilometer":   "km²",
	"squarekilometers":  "km²",
	"squaremeter":       "m²",
	"squaremeters":      "m²",
	"squaremillimeter":  "mm²",
	"squaremillimeters": "mm²",
	"squaremile":        "mi²",
	"squaremiles":       "mi²",
	"squareyard":        "yd²",
	"squareyards":       "yd²",
	"sqmeter":           "m²",
	"sqm":               "m²",
	"sqmeters":          "m²",
	"sqcentimeter":      "cm²",
	"sqcentimeters":     "cm²",
	"sqdecimeter":       "dm²",
	"sqdecimeters":      "dm²",
	"sqfoot":            "ft²",
	"sqfeet":            "ft²",
	"sqft":              "ft²",
	"sqinch":            "in²",
	"sqin":              "in²",
	"sqinches":          "in²",
	"sqkilometer":       "km²",
	"sqkm":              "km²",
	"sqkilometers":      "km²",
	"sqmillimeter":      "mm²",
	"sqmm":              "mm²",
	"sqmillimeters":     "mm²",
	"sqyard":            "yd²",
	"sqyd":              "yd²",
	"sqyards":           "yd²",
	"sqmile":            "mi²",
	"sqmi":              "mi²",
	"sqmiles":           "mi²",

	// Volume
	"acrefoot":         "acre·ft",
	"acrefeet":         "acre·ft",
	"centiliter":       "cL",
	"centiliters":      "cL",
	"cubiccentimeter":  "cm³",
	"cubiccentimeters": "cm³",
	"cubicdecimeter":   "dm³",
	"cubicdecimeters":  "dm³",
	"cubicfoot":        "ft³",
	"cubicfeet":        "ft³",
	"cubicinch":        "in³",
	"cubicinches":      "in³",
	"cubickilometer":   "km³",
	"cubickilometers":  "km³",
	"cubicmeter":       "m³",
	"cubicmeters":      "m³",
	"cubicmillimeter":  "mm³",
	"cubicmillimeters": "mm³",
	"cubicyard":        "yd³",
	"cubicyards":       "yd³",
	"dekaliter":        "daL",
	"dekaliters":       "daL",
	"deciliter":        "dL",
	"deciliters":       "dL",
	"gallon":           "gal",
	"gallons":          "gal",
	"hectoliter":       "hL",
	"hectoliters":      "hL",
	"liter":            "L",
	"liters":           "L",
	"milliliter":       "mL",
	"milliliters":      "mL",
	"pint":             "pt",
	"pints":            "pt",
	"quart":            "qt",
	"quarts":           "qt",
	"tablespoon":       "tbsp",
	"tablespoons":      "tbsp",
	"teaspoon":         "tsp",
	"teaspoons":        "tsp",
	"metercubed":       "m³",
	"meterscubed":      "m³",
	"centimetercubed":  "cm³",
	"centimeterscubed": "cm³",
	"decimetercubed":   "dm³",
	"decimeterscubed":  "dm³",
	"inchcubed":        "in³",
	"inchescubed":      "in³",
	"footcubed":        "ft³",
	"feetcubed":        "ft³",
	"yardcubed":        "yd³",
	"yardscubed":       "yd³",
	"kilometercubed":   "km³",
	"kilometerscubed":  "km³",
	"millimetercubed":  "mm³",
	"millimeterscubed": "mm³",
	"cup":              "cup",
	"cups":             "cup",
	"fluidounce":       "fl oz",
	"fluidounces":      "fl oz",
	"barrel":           "bbl",
	"barrels":          "bbl",
	"kiloliter":        "kL",
	"kiloliters":       "kL",

	// Temperature
	"celsius":     "°C",
	"c":           "°C",
	"°c":          "°C",
	"celsiuses":   "°C",
	"fahrenheit":  "°F",
	"f":           "°F",
	"°f":          "°F",
	"fahrenheits": "°F",
	"kelvin":      "K",
	"k":           "K",
	"kelvins":     "K",

	// Time
	"femtosecond":  "fs",
	"femtoseconds": "fs",
	"gigasecond":   "Gs",
	"gigaseconds":  "Gs",
	"hour":         "h",
	"hours":        "h",
	"microsecond":  "μs",
	"microseconds": "μs",
	"millisecond":  "ms",
	"milliseconds": "ms",
	"nanosecond":   "ns",
	"nanoseconds":  "ns",
	"second":       "s",
	"seconds":      "s",
	"terasecond":   "Ts",
	"teraseconds":  "Ts",
	"year":         "y",
	"years":        "y",
	"minute":       "min",
	"minutes":      "min",
	"day":          "d",
	"days":         "d",
	"week":         "wk",
	"weeks":        "wk",
	"month":        "mo",
	"months":       "mo",

	// Frequency
	"beatperminute":    "bpm",
	"beatsperminute":   "bpm",
	"beatpermin":       "bpm",
	"beatspermin":      "bpm",
	"cycleperhour":     "cph",
	"cyclesperhour":    "cph",
	"cycleperhr":       "cph",
	"cyclesperhr":      "cph",
	"cycleperminute":   "cpm",
	"cyclesperminute":  "cpm",
	"cyclepermin":      "cpm",
	"cyclespermin":     "cpm",
	"gigahertz":        "GHz",
	"gigahertzes":      "GHz",
	"ghz":              "GHz",
	"hertz":            "Hz",
	"hertzes":          "Hz",
	"hz":               "Hz",
	"kilohertz":        "kHz",
	"kilohertzes":      "kHz",
	"khz":              "kHz",
	"megahertz":        "MHz",
	"megahertzes":      "MHz",
	"persecond":        "1/s",
	"persec":           "1/s",
	"radianpersecond":  "rad/s",
	"radianspersecond": "rad/s",
	"radianpersec":     "rad/s",
	"radianspersec":    "rad/s",
	"terahertz":        "THz",
	"terahertzes":      "THz",
	"thz":              "THz",
	"microhertz":       "µHz",
	"microhertzes":     "µHz",
	"mhz":              "MHz",
	"millihertz":       "mHz",
	"millihertzes":     "mHz",
}
