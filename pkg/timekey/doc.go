/*
Package timekey derives a 24-byte AES-192 key from the wall clock and a caller-provided salt.

Two parties with roughly synchronized clocks and the same salt will derive the same key without ever transmitting it, as long as both derivations happen inside the same truncation window.
This is NOT a key derivation function in the cryptographic sense, the key space is tiny and the output is predictable from the time alone.

# How it works:

The current epoch seconds are formatted in decimal and the first 8 digits are kept.
A 104-character digit string is built from those 8 digits, followed by six reversed/forward pairs of them.
The string is scanned two characters at a time, and each pair is appended to the key as a single byte with the value 0-99.
The salt is appended, and the result is truncated to 24 bytes.

# Important notes:

The window width is implied by the digit count of the epoch, so a 10-digit epoch yields a 100-second window.
Use Window to find the bounds of the window containing a given instant.

The digit scan yields 27 bytes for an 8-digit prefix, which means the salt is truncated away entirely.
This matches existing deployments and is intentionally preserved, so the salt only contributes to keys derived from very short epochs.
*/
package timekey
