// Package bob implements Bob, a general purpose Discord bot whose main
// feature is unit conversion.
//
// Interactions are received over the Discord gateway or an HTTP webhook,
// and answered through an [InteractionHandler]. Conversions themselves are
// done by the [units] package, which is also exposed through the admin API.
//
// Key components of the package include:
//
//   - Bob: owns the Discord session, the database, and the servers.
//   - Discord: the gateway session, presence, and command registration.
//   - API: a backend API for bot management, and unit conversion over HTTP.
//   - RandomAPI: a rate-limited client for the APIs behind `/random`.
//   - DBI: writes to the database, serialized when using sqlite.
//
// The bot supports these commands:
//
//   - /convert units, /convert timezones
//   - /random: dice-roll, date, 8ball, choose, color, quote, coin-toss,
//     fact, dog, advice, dad-joke
//   - /quote new, /quote channel, and the "Quote" message command
//   - /fonts, /ship
//
// Settings that can change while the bot runs (pausing, custom status,
// log and suggestion channels, log levels) live in [RuntimeConfig], stored
// in the database and editable through the API.
package bob
