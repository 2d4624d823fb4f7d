/*
Package timesync lets parties agree on the clock used for key derivation.

Keys derived by timekey are only shared while both parties read their clocks inside the same window, so devices with unreliable clocks can ask a Handler for the time instead.

# How it works:

Handler answers GET requests with the current epoch seconds as JSON.

	{"unix_timestamp": 1727712345, "status": "success"}

Clock implements timekey.Clock by querying such an endpoint. It also understands the "unixtime" field used by public world time APIs.
When the request fails for any reason, Clock logs a warning and falls back to its local clock, so key derivation never blocks on the network for longer than the configured timeout.
*/
package timesync
