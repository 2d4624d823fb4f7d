/*
Package ppe is the text-level API for split/merge envelope encryption with time-derived keys.

# How it works:

Encrypt and Decrypt read the Engine's clock once per call and derive a fresh AES-192 key from the salt, which is discarded when the call returns.
The value is then passed through the splitmerge protocol using that key.
EncryptWithKey and DecryptWithKey skip derivation and use caller-supplied key material instead, given either as base64 or as 24 raw characters.

# General guidelines:
  - Both sides must derive their keys inside the same clock window, see timekey.Window. A decrypt that crosses a window boundary silently produces garbage, since envelopes carry no integrity check.
  - Trailing spaces in a value don't survive a round trip, they're indistinguishable from block padding.
  - Engines hold no key material and are safe for concurrent use.
*/
package ppe
