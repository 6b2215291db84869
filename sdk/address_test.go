package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressType(t *testing.T) {
	cases := map[Address]AddressType{
		"hive:alice":             AddressTypeHive,
		"did:key:z6Mk":           AddressTypeKey,
		"did:pkh:eip155:1:0xabc": AddressTypeEVM,
		"contract:presale":       AddressTypeContract,
		"system:fr_balance":      AddressTypeSystem,
		"alice":                  AddressTypeUnknown,
	}
	for addr, want := range cases {
		assert.Equal(t, want, addr.Type(), addr)
	}
	assert.Equal(t, AddressDomainContract, Address("contract:presale").Domain())
	assert.Equal(t, AddressDomainUser, Address("hive:alice").Domain())
}

func TestAddressIsValid(t *testing.T) {
	assert.True(t, Address("hive:alice").IsValid())
	assert.False(t, Address("hive:").IsValid())
	assert.False(t, Address("").IsValid())
	assert.False(t, Address("bob").IsValid())
}

func TestParseAddressList(t *testing.T) {
	got := ParseAddressList(" hive:a ; hive:b,,hive:c ;")
	assert.Equal(t, []Address{"hive:a", "hive:b", "hive:c"}, got)
	assert.Empty(t, ParseAddressList(" ; "))
}

func TestAmounts(t *testing.T) {
	for in, want := range map[string]uint64{
		"10000000": 10_000_000,
		"10.5":     10_500_000,
		".25":      250_000,
		"3.":       3_000_000,
		"0.000001": 1,
	} {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "1.2345678", "x", "1.x", "-1", "18446744073709.551616"} {
		_, err := ParseAmount(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "10.500000", FormatAmount(10_500_000))
	assert.Equal(t, "0.000001", FormatAmount(1))
}
