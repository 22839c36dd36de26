// Package keeper provides the lightweight, in-memory collaborators this
// module's own tests stand up instead of a full running chain: a
// store-backed sdk.Context over an in-memory multistore, plus mock
// bank/capability/connection-client implementations of this repo's own
// narrow interfaces.
package keeper

import (
	"fmt"
	"testing"

	"cosmossdk.io/log"
	storeimpl "cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/corechain/ibccore/core/exported"
)

// NewRelayerSigner mints a throwaway relayer identity for tests that only
// care that *some* distinct signer string was passed through to a module
// callback, rather than a fixed literal every test would otherwise share.
func NewRelayerSigner() string {
	return "relayer-" + uuid.New().String()
}

// ChannelStoreContext mounts a single in-memory KV store under key and
// returns an sdk.Context ready for a core/04-channel/keeper.Keeper.
func ChannelStoreContext(t testing.TB, key storetypes.StoreKey) sdk.Context {
	db := dbm.NewMemDB()
	cms := storeimpl.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	require.NoError(t, cms.LoadLatestVersion())

	return sdk.NewContext(cms, cmtproto.Header{Height: 1}, false, log.NewNopLogger())
}

// MockCapabilityKeeper is an in-memory stand-in for the capability module's
// keeper: good enough to exercise claim/authenticate without a real
// multi-module capability store behind it.
type MockCapabilityKeeper struct {
	caps  map[string]*capabilitytypes.Capability
	owned map[uint64]string
	next  uint64
}

func NewMockCapabilityKeeper() *MockCapabilityKeeper {
	return &MockCapabilityKeeper{
		caps:  make(map[string]*capabilitytypes.Capability),
		owned: make(map[uint64]string),
	}
}

func (m *MockCapabilityKeeper) NewCapability(_ sdk.Context, name string) (*capabilitytypes.Capability, error) {
	if _, ok := m.caps[name]; ok {
		return nil, fmt.Errorf("capability already exists for %q", name)
	}
	m.next++
	cap := &capabilitytypes.Capability{Index: m.next}
	m.owned[m.next] = name
	return cap, nil
}

func (m *MockCapabilityKeeper) ClaimCapability(_ sdk.Context, cap *capabilitytypes.Capability, name string) error {
	owner, ok := m.owned[cap.Index]
	if !ok || owner != name {
		return fmt.Errorf("capability index %d does not own name %q", cap.Index, name)
	}
	m.caps[name] = cap
	return nil
}

func (m *MockCapabilityKeeper) AuthenticateCapability(_ sdk.Context, cap *capabilitytypes.Capability, name string) bool {
	stored, ok := m.caps[name]
	return ok && stored.Index == cap.Index
}

func (m *MockCapabilityKeeper) GetCapability(_ sdk.Context, name string) (*capabilitytypes.Capability, bool) {
	cap, ok := m.caps[name]
	return cap, ok
}

// MockConnectionClientReader stubs the ICS-02/ICS-03 collaborators this
// module only ever reads from: connections are pre-seeded, and every proof
// check succeeds unless VerifyErr is set, so packet/channel tests can focus
// on this repo's own state machine rather than light-client cryptography.
type MockConnectionClientReader struct {
	Connections map[string]exported.ConnectionEnd
	Heights     map[string]exported.Height
	VerifyErr   error
}

func NewMockConnectionClientReader() *MockConnectionClientReader {
	return &MockConnectionClientReader{
		Connections: make(map[string]exported.ConnectionEnd),
		Heights:     make(map[string]exported.Height),
	}
}

func (m *MockConnectionClientReader) GetConnection(_ sdk.Context, connectionID string) (exported.ConnectionEnd, bool) {
	conn, ok := m.Connections[connectionID]
	return conn, ok
}

func (m *MockConnectionClientReader) GetLatestHeight(_ sdk.Context, clientID string) (exported.Height, bool) {
	height, ok := m.Heights[clientID]
	return height, ok
}

func (m *MockConnectionClientReader) VerifyMembership(_ sdk.Context, _ string, _ exported.Height, _ []byte, _ string, _ []byte) error {
	return m.VerifyErr
}

func (m *MockConnectionClientReader) VerifyNonMembership(_ sdk.Context, _ string, _ exported.Height, _ []byte, _ string) error {
	return m.VerifyErr
}

// MockBankKeeper is an in-memory stand-in for apps/transfer/keeper.BankKeeper,
// tracking escrowed and minted balances by bech32 address.
type MockBankKeeper struct {
	balances map[string]sdk.Coins
	minted   sdk.Coins
}

func NewMockBankKeeper() *MockBankKeeper {
	return &MockBankKeeper{balances: make(map[string]sdk.Coins)}
}

func (m *MockBankKeeper) Balance(addr sdk.AccAddress) sdk.Coins {
	return m.balances[addr.String()]
}

func (m *MockBankKeeper) SetBalance(addr sdk.AccAddress, coins sdk.Coins) {
	m.balances[addr.String()] = coins
}

func (m *MockBankKeeper) SendCoins(_ sdk.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	fromBal := m.balances[fromAddr.String()]
	newFrom, negative := fromBal.SafeSub(amt...)
	if negative {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", fromAddr, fromBal, amt)
	}
	m.balances[fromAddr.String()] = newFrom
	m.balances[toAddr.String()] = m.balances[toAddr.String()].Add(amt...)
	return nil
}

func (m *MockBankKeeper) MintCoins(_ sdk.Context, moduleName string, amt sdk.Coins) error {
	m.minted = m.minted.Add(amt...)
	moduleAddr := moduleAccAddress(moduleName)
	m.balances[moduleAddr] = m.balances[moduleAddr].Add(amt...)
	return nil
}

func (m *MockBankKeeper) BurnCoins(_ sdk.Context, moduleName string, amt sdk.Coins) error {
	moduleAddr := moduleAccAddress(moduleName)
	newBal, negative := m.balances[moduleAddr].SafeSub(amt...)
	if negative {
		return fmt.Errorf("module account %s cannot burn %s, holds %s", moduleName, amt, m.balances[moduleAddr])
	}
	m.balances[moduleAddr] = newBal
	return nil
}

func (m *MockBankKeeper) SendCoinsFromModuleToAccount(_ sdk.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	moduleAddr := moduleAccAddress(senderModule)
	newBal, negative := m.balances[moduleAddr].SafeSub(amt...)
	if negative {
		return fmt.Errorf("module account %s cannot send %s, holds %s", senderModule, amt, m.balances[moduleAddr])
	}
	m.balances[moduleAddr] = newBal
	m.balances[recipientAddr.String()] = m.balances[recipientAddr.String()].Add(amt...)
	return nil
}

func (m *MockBankKeeper) SendCoinsFromAccountToModule(_ sdk.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	fromBal := m.balances[senderAddr.String()]
	newFrom, negative := fromBal.SafeSub(amt...)
	if negative {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", senderAddr, fromBal, amt)
	}
	m.balances[senderAddr.String()] = newFrom
	moduleAddr := moduleAccAddress(recipientModule)
	m.balances[moduleAddr] = m.balances[moduleAddr].Add(amt...)
	return nil
}

func moduleAccAddress(moduleName string) string {
	return "module/" + moduleName
}
