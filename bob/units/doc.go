// Package units converts magnitudes between units of twelve physical
// quantity kinds.
//
// Unit text is resolved in two steps: an exact, case-sensitive match on unit
// symbols ("km", "m/s", "GB"), then a lookup of the lowercased, space-free text
// in an [AliasTable] ("Kilo Meters" -> "km"). The alias table is validated
// against the unit tables when a [Parser] is built.
//
//	p, err := units.NewParser(units.DefaultAliases())
//	...
//	rv, err := units.NewConverter(p).Convert(
//		units.Request{Kind: units.Length, Value: 1, From: "kilometers", To: "m"},
//	)
package units
