/*
Package rijndael provides a self-contained implementation of the AES block cipher for 128, 192, and 256-bit keys.

This is the cipher engine used by the split/merge envelope format, and it exists so that the exact key schedule and round ordering of that format are visible and testable.
It is NOT hardened: there is no constant-time table access, and no mode of operation is provided.
Prefer crypto/aes for anything that doesn't need to interoperate with the envelope format.

# How it works:

The key is expanded into a schedule of 16*(rounds+1) bytes, where rounds is 10, 12, or 14 depending on key length.
Each call to EncryptBlock or DecryptBlock transforms exactly one 16-byte block, expanding the key on every call and discarding the schedule afterward.
A Cipher may be created with NewCipher to expand the key once and reuse it, and it satisfies crypto/cipher.Block.

# General guidelines:
  - Only whole 16-byte blocks are processed. Padding and chaining are the caller's responsibility.
  - Errors are returned as values (ErrUnknownKeySize, ErrAllocationFailure, ErrBlockSize), never as panics, except through the cipher.Block methods which follow the crypto/cipher contract.
*/
package rijndael
