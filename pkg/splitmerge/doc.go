/*
Package splitmerge implements the split/merge envelope format used to obscure short text values.

# How it works:

A value is split at the midpoint, with the extra character (if any) going to the right half.
Each half is space-padded to a whole number of AES blocks, encrypted block by block with AES-192, and base64 encoded.
The two encoded halves are joined with the literal delimiter "~|~", and the whole thing is base64 encoded again.

Decryption reverses this, splitting the inner text on '~' and reading the halves from tokens 0 and 2.
The middle token is what's left of the delimiter's '|', and is ignored.

# Important notes:

Any zero byte in ciphertext is replaced with ZeroSentinel before encoding, to match payloads produced by implementations that treated ciphertext as a NUL-terminated string.
This substitution is lossy, so a block that contained a zero byte won't decrypt correctly.
Use WithZeroSentinel(false) if both ends of the exchange are known to use this package.

There is no integrity protection.
Decrypting with the wrong key produces garbage rather than an error.
*/
package splitmerge
