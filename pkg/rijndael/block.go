package rijndael

import (
	"fmt"

	"github.com/templexxx/xor"
)

// state holds one block in column-major order, so byte (row r, column c) lives at index r+4c.
type state [BlockSize]byte

func (s *state) addRoundKey(schedule []byte, round int) {
	off := round * BlockSize
	xor.BytesSameLen(s[:], s[:], schedule[off:off+BlockSize])
}

func (s *state) subBytes() {
	for i := range s {
		s[i] = sbox[s[i]]
	}
}

func (s *state) invSubBytes() {
	inv := inverseSbox()
	for i := range s {
		s[i] = inv[s[i]]
	}
}

// shiftRows rotates row r left by r positions.
func (s *state) shiftRows() {
	var t state
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t[r+4*c] = s[r+4*((c+r)%4)]
		}
	}
	*s = t
}

func (s *state) invShiftRows() {
	var t state
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t[r+4*((c+r)%4)] = s[r+4*c]
		}
	}
	*s = t
}

func (s *state) mixColumns() {
	for c := 0; c < 4; c++ {
		col := s[4*c : 4*c+4]
		a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
		col[0] = gmul(a0, 2) ^ gmul(a1, 3) ^ a2 ^ a3
		col[1] = a0 ^ gmul(a1, 2) ^ gmul(a2, 3) ^ a3
		col[2] = a0 ^ a1 ^ gmul(a2, 2) ^ gmul(a3, 3)
		col[3] = gmul(a0, 3) ^ a1 ^ a2 ^ gmul(a3, 2)
	}
}

func (s *state) invMixColumns() {
	for c := 0; c < 4; c++ {
		col := s[4*c : 4*c+4]
		a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
		col[0] = gmul(a0, 14) ^ gmul(a1, 11) ^ gmul(a2, 13) ^ gmul(a3, 9)
		col[1] = gmul(a0, 9) ^ gmul(a1, 14) ^ gmul(a2, 11) ^ gmul(a3, 13)
		col[2] = gmul(a0, 13) ^ gmul(a1, 9) ^ gmul(a2, 14) ^ gmul(a3, 11)
		col[3] = gmul(a0, 11) ^ gmul(a1, 13) ^ gmul(a2, 9) ^ gmul(a3, 14)
	}
}

func encryptState(s *state, schedule []byte, rounds int) {
	s.addRoundKey(schedule, 0)
	for round := 1; round < rounds; round++ {
		s.subBytes()
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(schedule, round)
	}
	s.subBytes()
	s.shiftRows()
	s.addRoundKey(schedule, rounds)
}

func decryptState(s *state, schedule []byte, rounds int) {
	s.addRoundKey(schedule, rounds)
	for round := rounds - 1; round > 0; round-- {
		s.invShiftRows()
		s.invSubBytes()
		s.addRoundKey(schedule, round)
		s.invMixColumns()
	}
	s.invShiftRows()
	s.invSubBytes()
	s.addRoundKey(schedule, 0)
}

func checkBlock(dst, src []byte) error {
	if len(src) != BlockSize {
		return fmt.Errorf("%w: source is %d bytes", ErrBlockSize, len(src))
	}
	if len(dst) < BlockSize {
		return fmt.Errorf("%w: destination is %d bytes", ErrBlockSize, len(dst))
	}
	return nil
}

// EncryptBlock encrypts exactly one block from src into dst using key.
// The key schedule is expanded for this call only. Dst and src may overlap entirely.
func EncryptBlock(dst, src, key []byte) error {
	if err := checkBlock(dst, src); err != nil {
		return err
	}
	schedule, err := ExpandKey(key)
	if err != nil {
		return err
	}
	var s state
	copy(s[:], src)
	encryptState(&s, schedule, len(schedule)/BlockSize-1)
	copy(dst, s[:])
	return nil
}

// DecryptBlock reverses EncryptBlock for exactly one block.
func DecryptBlock(dst, src, key []byte) error {
	if err := checkBlock(dst, src); err != nil {
		return err
	}
	schedule, err := ExpandKey(key)
	if err != nil {
		return err
	}
	var s state
	copy(s[:], src)
	decryptState(&s, schedule, len(schedule)/BlockSize-1)
	copy(dst, s[:])
	return nil
}
