// Package ingame models the Live Client Data API of a running League of
// Legends game and decodes its JSON strictly.
//
// Records reject unknown and missing fields so upstream schema drift fails
// loudly. Free-text engine identifiers (killers, turrets, inhibitors,
// dragons) are classified into closed sets; turret, inhibitor and killer
// classification never fails, while dragon kinds are exhaustive.
//
// Every function here is pure and safe for concurrent use.
package ingame
