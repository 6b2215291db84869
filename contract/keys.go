package contract

import "okinoko_presale/sdk"

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

func singletonKey(prefix byte) string {
	return string([]byte{prefix})
}

func configKey() string { return singletonKey(kConfig) }

func presaleStateKey() string { return singletonKey(kPresaleState) }

func callSeqKey() string { return singletonKey(kCallSeq) }

// participantKey is prefix plus raw address bytes, no length needed since nothing follows.
func participantKey(addr sdk.Address) string {
	s := addr.String()
	buf := make([]byte, 0, 1+len(s))
	buf = append(buf, kParticipant)
	buf = append(buf, s...)
	return string(buf)
}

// participantIndexKey orders participants by their first deposit.
func participantIndexKey(i uint64) string {
	var buf [9]byte
	buf[0] = kParticipantIndex
	packU64LEInline(i, buf[1:])
	return string(buf[:])
}

// whitelistKey mirrors participant keys but keeps approvals in a separate prefix.
func whitelistKey(addr sdk.Address) string {
	s := addr.String()
	buf := make([]byte, 0, 1+len(s))
	buf = append(buf, kWhitelist)
	buf = append(buf, s...)
	return string(buf)
}
