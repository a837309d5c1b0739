package units

import "math"

const (
	inch         = 0.0254
	foot         = 12 * inch
	yard         = 3 * foot
	mile         = 1760 * yard
	usSurveyFoot = 1200.0 / 3937.0
	lightYear    = 9.46073047258e15
	parsec       = 3.08567758128e16
	pound        = 0.45359237
	btu          = 1055.05585262
	electronVolt = 1.602176634e-19
	calorie      = 4.184
	minute       = 60.0
	hour         = 60 * minute
	day          = 24 * hour
	degree       = math.Pi / 180
	psi          = 6894.757293168361
)

var quantities = [...]*Quantity{
	Length: newQuantity(
		Length,
		"Length",
		"\n- Plural forms are accepted such as meters."+
			"\n- Abbreviated forms are accepted like m (these are case sensitive).",
		unit("Angstrom", 1e-10, "Å"),
		unit("AstronomicalUnit", 1.495978707e11, "au", "AU", "ua"),
		unit("Centimeter", 1e-2, "cm"),
		unit("Chain", 20.1168, "ch"),
		unit("DataMile", 1828.8, "DM"),
		unit("Decameter", 10, "dam"),
		unit("Decimeter", 1e-1, "dm"),
		unit("DtpPica", inch/6, "pica"),
		unit("DtpPoint", inch/72, "pt"),
		unit("Fathom", 6*foot, "ftm", "fathom"),
		unit("Femtometer", 1e-15, "fm"),
		unit("Foot", foot, "ft", "'"),
		unit("Gigameter", 1e9, "Gm"),
		unit("Hand", 4*inch, "h", "hh"),
		unit("Hectometer", 1e2, "hm"),
		unit("Inch", inch, "in", "\""),
		unit("Kilofoot", 1e3*foot, "kft"),
		unit("KilolightYear", 1e3*lightYear, "kly"),
		unit("Kilometer", 1e3, "km"),
		unit("Kiloparsec", 1e3*parsec, "kpc"),
		unit("Kiloyard", 1e3*yard, "kyd"),
		unit("LightYear", lightYear, "ly"),
		unit("MegalightYear", 1e6*lightYear, "Mly"),
		unit("Megameter", 1e6, "Mm"),
		unit("Megaparsec", 1e6*parsec, "Mpc"),
		unit("Meter", 1, "m"),
		unit("Microinch", 1e-6*inch, "µin", "μin"),
		unit("Micrometer", 1e-6, "µm", "μm"),
		unit("Mil", 1e-3*inch, "mil"),
		unit("Mile", mile, "mi"),
		unit("Millimeter", 1e-3, "mm"),
		unit("Nanometer", 1e-9, "nm"),
		unit("NauticalMile", 1852, "NM", "nmi"),
		unit("Parsec", parsec, "pc"),
		unit("Picometer", 1e-12, "pm"),
		unit("PrinterPica", inch/6.0225, "pica(p)"),
		unit("PrinterPoint", inch/72.27, "pt(p)"),
		unit("Shackle", 90*foot, "shackle"),
		unit("SolarRadius", 6.9551e8, "R☉", "R⊙"),
		unit("Twip", inch/1440, "twip"),
		unit("UsSurveyFoot", usSurveyFoot, "ftUS"),
		unit("Yard", yard, "yd"),
	),
	Mass: newQuantity(
		Mass,
		"Mass",
		"\n- Plural forms are accepted such as kilograms."+
			"\n- Abbreviated forms are accepted like kg (these are case sensitive).",
		unit("Centigram", 1e-5, "cg"),
		unit("Decagram", 1e-2, "dag"),
		unit("Decigram", 1e-4, "dg"),
		unit("EarthMass", 5.9722e24, "M⊕", "em"),
		unit("Femtogram", 1e-18, "fg"),
		unit("Grain", 64.79891e-6, "gr"),
		unit("Gram", 1e-3, "g"),
		unit("Hectogram", 1e-1, "hg"),
		unit("Kilogram", 1, "kg"),
		unit("Kilopound", 1e3*pound, "klb"),
		unit("Kilotonne", 1e6, "kt"),
		unit("LongHundredweight", 112*pound, "lcwt", "cwt"),
		unit("LongTon", 2240*pound, "LT", "long tn"),
		unit("Megapound", 1e6*pound, "Mlb"),
		unit("Megatonne", 1e9, "Mt"),
		unit("Microgram", 1e-9, "µg", "μg"),
		unit("Milligram", 1e-6, "mg"),
		unit("Nanogram", 1e-12, "ng"),
		unit("Ounce", pound/16, "oz"),
		unit("Picogram", 1e-15, "pg"),
		unit("Pound", pound, "lb", "lbs", "lbm"),
		unit("ShortHundredweight", 100*pound, "shcwt"),
		unit("ShortTon", 2000*pound, "short tn"),
		unit("Slug", 14.593902937206366, "slug"),
		unit("SolarMass", 1.98947e30, "M☉", "M⊙"),
		unit("Stone", 14*pound, "st"),
		unit("Tonne", 1e3, "t"),
	),
	Volume: newQuantity(
		Volume,
		"Volume",
		"\n- Plural forms are accepted such as liters."+
			"\n- Abbreviated forms are accepted like L (these are case sensitive)."+
			"\n- Special characters are also accepted like m³",
		unit("AcreFoot", 1233.48183754752, "acre·ft", "ac-ft"),
		unit("Centiliter", 1e-5, "cL", "cl"),
		unit("CubicCentimeter", 1e-6, "cm³"),
		unit("CubicDecimeter", 1e-3, "dm³"),
		unit("CubicFoot", foot*foot*foot, "ft³"),
		unit("CubicInch", inch*inch*inch, "in³"),
		unit("CubicKilometer", 1e9, "km³"),
		unit("CubicMeter", 1, "m³"),
		unit("CubicMile", mile*mile*mile, "mi³"),
		unit("CubicMillimeter", 1e-9, "mm³"),
		unit("CubicYard", yard*yard*yard, "yd³"),
		unit("Decaliter", 1e-2, "daL", "dal"),
		unit("Deciliter", 1e-4, "dL", "dl"),
		unit("Hectoliter", 1e-1, "hL", "hl"),
		unit("ImperialGallon", 4.54609e-3, "gal (imp.)"),
		unit("ImperialOunce", 2.84130625e-5, "oz (imp.)"),
		unit("ImperialPint", 5.6826125e-4, "pt (imp.)"),
		unit("Kiloliter", 1, "kL", "kl"),
		unit("Liter", 1e-3, "L", "l"),
		unit("Megaliter", 1e3, "ML", "Ml"),
		unit("Microliter", 1e-9, "µL", "μL", "µl"),
		unit("Milliliter", 1e-6, "mL", "ml"),
		unit("OilBarrel", 0.158987294928, "bbl"),
		unit("UsCustomaryCup", 2.365882365e-4, "cup"),
		unit("UsGallon", 3.785411784e-3, "gal", "gal (U.S.)"),
		unit("UsOunce", 2.95735295625e-5, "fl oz", "oz (U.S.)"),
		unit("UsPint", 4.73176473e-4, "pt", "pt (U.S.)"),
		unit("UsQuart", 9.46352946e-4, "qt", "qt (U.S.)"),
		unit("UsTablespoon", 1.478676478125e-5, "tbsp"),
		unit("UsTeaspoon", 4.92892159375e-6, "tsp"),
	),
	Area: newQuantity(
		Area,
		"Area",
		"\n- Plural forms are accepted such as square meters."+
			"\n- Abbreviated forms are accepted like sq m (these are case sensitive)."+
			"\n- Special characters are also accepted like m²",
		unit("Acre", 4046.8564224, "acre", "ac"),
		unit("Are", 1e2, "are", "a"),
		unit("Centiare", 1, "c㎡", "ca"),
		unit("Hectare", 1e4, "ha"),
		unit("SquareCentimeter", 1e-4, "cm²"),
		unit("SquareDecimeter", 1e-2, "dm²"),
		unit("SquareFoot", foot*foot, "ft²"),
		unit("SquareInch", inch*inch, "in²"),
		unit("SquareKilometer", 1e6, "km²"),
		unit("SquareMeter", 1, "m²"),
		unit("SquareMicrometer", 1e-12, "µm²", "μm²"),
		unit("SquareMile", mile*mile, "mi²"),
		unit("SquareMillimeter", 1e-6, "mm²"),
		unit("SquareNauticalMile", 1852*1852, "nmi²"),
		unit("SquareYard", yard*yard, "yd²"),
		unit("UsSurveySquareFoot", usSurveyFoot*usSurveyFoot, "ft² (US)"),
	),
	Time: newQuantity(
		Time,
		"Duration",
		"\n- Plural forms are accepted such as seconds."+
			"\n- Abbreviated forms are accepted like s (these are case sensitive).",
		unit("Day", day, "d"),
		unit("Femtosecond", 1e-15, "fs"),
		unit("Gigasecond", 1e9, "Gs"),
		unit("Hour", hour, "h", "hr"),
		unit("JulianYear", 365.25*day, "jyr"),
		unit("Microsecond", 1e-6, "µs", "μs"),
		unit("Millisecond", 1e-3, "ms"),
		unit("Minute", minute, "min", "m"),
		unit("Month30", 30*day, "mo"),
		unit("Nanosecond", 1e-9, "ns"),
		unit("Second", 1, "s", "sec"),
		unit("Terasecond", 1e12, "Ts"),
		unit("Week", 7*day, "wk"),
		unit("Year365", 365*day, "y", "yr"),
	),
	Temperature: newQuantity(
		Temperature,
		"Temperature",
		"\n- Plural forms are accepted such as degrees Celsius."+
			"\n- Abbreviated forms are accepted like C (these are case sensitive)."+
			"\n- Special characters are also accepted like °C",
		// base unit is the degree Celsius
		affineUnit("DegreeCelsius", 0, 1, 1, 0, "°C"),
		affineUnit("DegreeDelisle", 0, -2, 3, 100, "°De"),
		affineUnit("DegreeFahrenheit", -32, 5, 9, 0, "°F"),
		affineUnit("DegreeNewton", 0, 100, 33, 0, "°N"),
		affineUnit("DegreeRankine", 0, 5, 9, -273.15, "°R"),
		affineUnit("DegreeReaumur", 0, 5, 4, 0, "°Ré"),
		affineUnit("DegreeRoemer", -7.5, 40, 21, 0, "°Rø"),
		affineUnit("Kelvin", 0, 1, 1, -273.15, "K"),
		affineUnit("MillidegreeCelsius", 0, 1, 1000, 0, "m°C"),
		affineUnit("SolarTemperature", 0, 5778, 1, -273.15, "T⊙"),
	),
	Pressure: newQuantity(
		Pressure,
		"Pressure",
		"\n- Plural forms are accepted such as pascals."+
			"\n- Abbreviated forms are accepted like Pa (these are case sensitive).",
		unit("Atmosphere", 101325, "atm"),
		unit("Bar", 1e5, "bar"),
		unit("Centibar", 1e3, "cbar"),
		unit("Decapascal", 1e1, "daPa"),
		unit("Decibar", 1e4, "dbar"),
		unit("DynePerSquareCentimeter", 1e-1, "dyn/cm²"),
		unit("FootOfHead", 2989.0669, "ft.head", "ft of head"),
		unit("Gigapascal", 1e9, "GPa"),
		unit("Hectopascal", 1e2, "hPa"),
		unit("InchOfMercury", 3386.389, "inHg"),
		unit("InchOfWaterColumn", 249.08890833333, "inH₂O", "inH2O", "wc"),
		unit("Kilobar", 1e8, "kbar"),
		unit("KilogramForcePerSquareCentimeter", 98066.5, "kgf/cm²"),
		unit("Kilopascal", 1e3, "kPa"),
		unit("Megapascal", 1e6, "MPa"),
		unit("Micropascal", 1e-6, "µPa", "μPa"),
		unit("MilliinchOfMercury", 3.386389, "milli-inHg"),
		unit("MilliinchOfWaterColumn", 0.24908890833333, "milli-inH₂O"),
		unit("Millibar", 1e2, "mbar"),
		unit("MillimeterOfMercury", 133.322387415, "mmHg"),
		unit("Millipascal", 1e-3, "mPa"),
		unit("NewtonPerSquareMeter", 1, "N/m²"),
		unit("Pascal", 1, "Pa"),
		unit("PoundForcePerSquareFoot", psi/144, "lb/ft²", "psf"),
		unit("PoundForcePerSquareInch", psi, "psi", "lb/in²", "psia"),
		unit("TechnicalAtmosphere", 98066.5, "at"),
		unit("Torr", 101325.0/760.0, "torr", "Torr"),
	),
	Speed: newQuantity(
		Speed,
		"Speed",
		"\n- Plural forms are accepted such as meters per second."+
			"\n- Abbreviated forms are accepted like m/s (these are case sensitive).",
		speedUnits()...,
	),
	Energy: newQuantity(
		Energy,
		"Energy",
		"\n- Plural forms are accepted such as joules."+
			"\n- Abbreviated forms are accepted like J (these are case sensitive).",
		unit("BritishThermalUnit", btu, "BTU"),
		unit("Calorie", calorie, "cal"),
		unit("DecathermEc", 1e6*btu, "dth(e)", "Dth (E.C.)"),
		unit("DecathermImperial", 1.05505585257348e9, "dth(i)", "Dth (imp.)"),
		unit("DecathermUs", 1.054804e9, "dth", "Dth (U.S.)"),
		unit("ElectronVolt", electronVolt, "eV"),
		unit("Erg", 1e-7, "erg"),
		unit("FootPound", 1.3558179483314004, "ft·lbf", "ft·lb", "ft-lb"),
		unit("GigabritishThermalUnit", 1e9*btu, "GBTU"),
		unit("GigaelectronVolt", 1e9*electronVolt, "GeV"),
		unit("Gigajoule", 1e9, "GJ"),
		unit("GigawattDay", 1e9*day, "GWd"),
		unit("GigawattHour", 1e9*hour, "GWh"),
		unit("HorsepowerHour", 2684519.537696172792, "hp·h"),
		unit("Joule", 1, "J"),
		unit("KilobritishThermalUnit", 1e3*btu, "kBTU"),
		unit("Kilocalorie", 1e3*calorie, "kcal"),
		unit("KiloelectronVolt", 1e3*electronVolt, "keV"),
		unit("Kilojoule", 1e3, "kJ"),
		unit("KilowattDay", 1e3*day, "kWd"),
		unit("KilowattHour", 1e3*hour, "kWh"),
		unit("MegabritishThermalUnit", 1e6*btu, "MBTU"),
		unit("Megacalorie", 1e6*calorie, "Mcal"),
		unit("MegaelectronVolt", 1e6*electronVolt, "MeV"),
		unit("Megajoule", 1e6, "MJ"),
		unit("MegawattDay", 1e6*day, "MWd"),
		unit("MegawattHour", 1e6*hour, "MWh"),
		unit("Microjoule", 1e-6, "µJ", "μJ"),
		unit("Millijoule", 1e-3, "mJ"),
		unit("Nanojoule", 1e-9, "nJ"),
		unit("Petajoule", 1e15, "PJ"),
		unit("TeraelectronVolt", 1e12*electronVolt, "TeV"),
		unit("Terajoule", 1e12, "TJ"),
		unit("TerawattDay", 1e12*day, "TWd"),
		unit("TerawattHour", 1e12*hour, "TWh"),
		unit("ThermEc", 1e5*btu, "therm(e)", "th (E.C.)"),
		unit("ThermImperial", 1.05505585257348e8, "therm(i)", "th (imp.)"),
		unit("ThermUs", 1.054804e8, "therm", "th (U.S.)"),
		unit("WattDay", day, "Wd"),
		unit("WattHour", hour, "Wh"),
	),
	Storage: newQuantity(
		Storage,
		"Information",
		"\n- Plural forms are accepted such as bytes."+
			"\n- Abbreviated forms are accepted like B (these are case sensitive).",
		informationUnits()...,
	),
	Angle: newQuantity(
		Angle,
		"Angle",
		"\n- Plural forms are accepted such as degrees."+
			"\n- Abbreviated forms are accepted like deg (these are case sensitive)."+
			"\n- Special characters are also accepted like °.",
		unit("Arcminute", degree/60, "′", "'", "arcmin", "amin"),
		unit("Arcsecond", degree/3600, "″", "\"", "arcsec", "asec"),
		unit("Centiradian", 1e-2, "crad"),
		unit("Deciradian", 1e-1, "drad"),
		unit("Degree", degree, "°", "deg"),
		unit("Gradian", math.Pi/200, "gon", "g"),
		unit("Microdegree", 1e-6*degree, "µ°", "μ°", "µdeg", "μdeg"),
		unit("Microradian", 1e-6, "µrad", "μrad"),
		unit("Millidegree", 1e-3*degree, "m°", "mdeg"),
		unit("Milliradian", 1e-3, "mrad"),
		unit("Nanodegree", 1e-9*degree, "n°", "ndeg"),
		unit("Nanoradian", 1e-9, "nrad"),
		unit("NatoMil", 2*math.Pi/6400, "mil"),
		unit("Radian", 1, "rad"),
		unit("Revolution", 2*math.Pi, "rev", "r"),
	),
	Frequency: newQuantity(
		Frequency,
		"Frequency",
		"\n- Plural forms are accepted such as hertz."+
			"\n- Abbreviated forms are accepted like Hz (these are case sensitive).",
		unit("BeatPerMinute", 1/minute, "bpm"),
		unit("CyclePerHour", 1/hour, "cph"),
		unit("CyclePerMinute", 1/minute, "cpm"),
		unit("Gigahertz", 1e9, "GHz"),
		unit("Hertz", 1, "Hz"),
		unit("Kilohertz", 1e3, "kHz"),
		unit("Megahertz", 1e6, "MHz"),
		unit("Microhertz", 1e-6, "µHz", "μHz"),
		unit("Millihertz", 1e-3, "mHz"),
		unit("PerSecond", 1, "1/s", "s⁻¹"),
		unit("RadianPerSecond", 1/(2*math.Pi), "rad/s"),
		unit("Terahertz", 1e12, "THz"),
	),
}

type lengthPrefix struct {
	name    string
	factor  float64
	symbols []string
}

type period struct {
	name    string
	symbol  string
	seconds float64
}

var (
	perHour   = period{"Hour", "h", hour}
	perMinute = period{"Minute", "min", minute}
	perSecond = period{"Second", "s", 1}
)

func speedUnits() []Unit {
	rates := []struct {
		length  lengthPrefix
		periods []period
	}{
		{lengthPrefix{"Centimeter", 1e-2, []string{"cm"}}, []period{perHour, perMinute, perSecond}},
		{lengthPrefix{"Decimeter", 1e-1, []string{"dm"}}, []period{perMinute, perSecond}},
		{lengthPrefix{"Foot", foot, []string{"ft"}}, []period{perHour, perMinute, perSecond}},
		{lengthPrefix{"Inch", inch, []string{"in"}}, []period{perHour, perMinute, perSecond}},
		{lengthPrefix{"Kilometer", 1e3, []string{"km"}}, []period{perHour, perMinute, perSecond}},
		{lengthPrefix{"Meter", 1, []string{"m"}}, []period{perHour, perMinute, perSecond}},
		{lengthPrefix{"Micrometer", 1e-6, []string{"µm", "μm"}}, []period{perMinute, perSecond}},
		{lengthPrefix{"Millimeter", 1e-3, []string{"mm"}}, []period{perHour, perMinute, perSecond}},
		{lengthPrefix{"Nanometer", 1e-9, []string{"nm"}}, []period{perMinute, perSecond}},
		{lengthPrefix{"UsSurveyFoot", usSurveyFoot, []string{"ftUS"}}, []period{perHour, perMinute, perSecond}},
		{lengthPrefix{"Yard", yard, []string{"yd"}}, []period{perHour, perMinute, perSecond}},
	}

	rv := []Unit{
		unit("Knot", 1852/hour, "kn", "kt", "knot"),
		unit("Mach", 340.29, "Ma", "M"),
		unit("MilePerHour", mile/hour, "mph"),
	}
	for _, r := range rates {
		for _, p := range r.periods {
			symbols := make([]string, len(r.length.symbols))
			for i, s := range r.length.symbols {
				symbols[i] = s + "/" + p.symbol
			}
			rv = append(
				rv,
				unit(r.length.name+"Per"+p.name, r.length.factor/p.seconds, symbols...),
			)
		}
	}
	return rv
}

func informationUnits() []Unit {
	prefixes := []struct {
		name   string
		symbol string
		factor float64
	}{
		{"Kilo", "k", 1e3},
		{"Mega", "M", 1e6},
		{"Giga", "G", 1e9},
		{"Tera", "T", 1e12},
		{"Peta", "P", 1e15},
		{"Exa", "E", 1e18},
		{"Kibi", "Ki", 1 << 10},
		{"Mebi", "Mi", 1 << 20},
		{"Gibi", "Gi", 1 << 30},
		{"Tebi", "Ti", 1 << 40},
		{"Pebi", "Pi", 1 << 50},
		{"Exbi", "Ei", 1 << 60},
	}

	rv := []Unit{
		unit("Bit", 1, "b"),
		unit("Byte", 8, "B"),
	}
	for _, p := range prefixes {
		rv = append(
			rv,
			unit(p.name+"bit", p.factor, p.symbol+"b"),
			unit(p.name+"byte", 8*p.factor, p.symbol+"B"),
		)
	}
	return rv
}
