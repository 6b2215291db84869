package launcher

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"

	"okinoko_presale/contract"
	"okinoko_presale/flags"
	"okinoko_presale/sdk"
)

type cliRunner struct {
	t       *testing.T
	datadir string
}

func newCLIRunner(t *testing.T) *cliRunner {
	return &cliRunner{t: t, datadir: t.TempDir()}
}

// run executes one CLI invocation; --datadir is inserted after the command path.
func (r *cliRunner) run(path []string, args ...string) (string, error) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	argv := append([]string{"okinoko-presale"}, path...)
	argv = append(argv, "--datadir", r.datadir, "--log.level", "warn")
	argv = append(argv, args...)
	err := app.Run(argv)
	return out.String(), err
}

func (r *cliRunner) mustRun(path []string, args ...string) string {
	out, err := r.run(path, args...)
	require.NoError(r.t, err, "%v %v", path, args)
	return out
}

func cmd(names ...string) []string { return names }

func TestCLISaleLifecycle(t *testing.T) {
	r := newCLIRunner(t)

	r.mustRun(cmd("deploy"), "--from", "hive:owner")
	r.mustRun(cmd("mint"), "hive:alice", "500.0")
	r.mustRun(cmd("mint"), "--asset", "stxcity", "hive:owner", "200000000.0")
	r.mustRun(cmd("whitelist", "add"), "--from", "hive:owner", "hive:alice")

	_, err := r.run(cmd("buy"), "--from", "hive:alice", "100")
	require.Error(t, err)
	assert.Equal(t, contract.ErrSaleNotActive.Code, contract.CodeOf(err))

	out := r.mustRun(cmd("mine"), "10")
	assert.Equal(t, "block 10\n", out)

	r.mustRun(cmd("buy"), "--from", "hive:alice", "50.5")

	out = r.mustRun(cmd("balance"), "hive:alice")
	assert.Equal(t, "449.500000 stx\n", out)

	out = r.mustRun(cmd("info"))
	var info contract.PresaleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.True(t, info.Initialized)
	assert.Equal(t, uint64(10), info.CurrentBlock)
	assert.Equal(t, contract.PhaseWhitelist.String(), info.Phase)
	assert.Equal(t, uint64(50_500_000), info.TotalRaised)
	assert.Equal(t, uint64(1), info.ParticipantCount)

	out = r.mustRun(cmd("user"), "hive:alice")
	var user contract.UserInfo
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, uint64(50_500_000), user.Deposit)
	assert.True(t, user.Whitelisted)

	r.mustRun(cmd("mine"), "20")
	r.mustRun(cmd("finalize"), "--from", "hive:owner")

	out = r.mustRun(cmd("info"))
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.True(t, info.Finalized)
	assert.False(t, info.DistributionStarted)

	r.mustRun(cmd("refund"), "--from", "hive:alice")
	out = r.mustRun(cmd("balance"), "hive:alice")
	assert.Equal(t, "500.000000 stx\n", out)
}

func TestCLIRequiresDeploy(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run(cmd("info"))
	require.ErrorIs(t, err, contract.ErrNotInitialized)
}

func TestCLIRequiresCaller(t *testing.T) {
	r := newCLIRunner(t)
	r.mustRun(cmd("deploy"), "--from", "hive:owner")
	_, err := r.run(cmd("finalize"))
	require.ErrorIs(t, err, errMissingCaller)
}

func TestCLIRejectsBadArguments(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run(cmd("mint"), "nobody", "1")
	require.ErrorIs(t, err, contract.ErrInvalidAddress)

	_, err = r.run(cmd("mint"), "hive:alice", "1.0000001")
	require.Error(t, err)

	_, err = r.run(cmd("mine"), "ten")
	require.Error(t, err)
}

func TestCLIDeployValidatesConfig(t *testing.T) {
	r := newCLIRunner(t)
	_, err := r.run(cmd("deploy"), "--from", "hive:owner", "--sale.softcap", "5000000", "--sale.hardcap", "1000")
	require.Error(t, err)
	assert.Equal(t, contract.ErrInvalidConfig.Code, contract.CodeOf(err))

	r.mustRun(cmd("deploy"), "--from", "hive:owner")
	_, err = r.run(cmd("deploy"), "--from", "hive:owner")
	assert.Equal(t, contract.ErrAlreadyInitialized.Code, contract.CodeOf(err))
}

func TestMakeConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range append(append(flags.CommonFlags(), flags.CallerFlags()...), append(flags.SaleFlags(), flags.HTTPFlags()...)...) {
		f.Apply(set)
	}
	require.NoError(t, set.Parse([]string{
		"--datadir", dir,
		"--from", "hive:alice",
		"--sale.softcap", "2000.5",
		"--sale.end", "99",
		"--http.rate", "2.5",
		"--log.format", "json",
	}))
	ctx := cli.NewContext(cli.NewApp(), set, nil)

	cfg, err := MakeConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, sdk.Address("hive:alice"), cfg.Caller)
	assert.Equal(t, sdk.Address("hive:alice"), cfg.Sale.Owner)
	assert.Equal(t, 2000*sdk.One+500_000, cfg.Sale.Softcap)
	assert.Equal(t, uint64(99), cfg.Sale.EndBlock)
	assert.Equal(t, contract.DefaultHardcap, cfg.Sale.Hardcap)
	assert.Equal(t, 2.5, cfg.HTTP.RatePerSecond)
	assert.Equal(t, 100, cfg.HTTP.Burst)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, sdk.Address("contract:presale"), cfg.Self)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join(GuessHomeDir(), "x"), resolvePath("~/x"))
	assert.Equal(t, "/tmp/y", resolvePath("/tmp/y"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	l.WithField("op", "buy").Info("event")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "buy", line["op"])

	_, err = newLogger(LoggingConfig{Level: "loud"}, &buf)
	require.Error(t, err)
	_, err = newLogger(LoggingConfig{Level: "info", Format: "xml"}, &buf)
	require.Error(t, err)
}

func TestSharedReaderLetsCommandsWrite(t *testing.T) {
	r := newCLIRunner(t)
	r.mustRun(cmd("deploy"), "--from", "hive:owner")

	cfg := defaultConfig()
	cfg.DataDir = r.datadir
	log, err := newLogger(LoggingConfig{Level: "warn", Format: "text"}, io.Discard)
	require.NoError(t, err)
	reader := newSharedReader(cfg, log)

	info, err := reader.GetPresaleInfo()
	require.NoError(t, err)
	assert.Zero(t, info.CurrentBlock)

	// the reader holds no lock between queries
	r.mustRun(cmd("mine"), "15")
	r.mustRun(cmd("mint"), "hive:alice", "20.0")
	_, err = r.run(cmd("buy"), "--from", "hive:alice", "20.0")
	assert.ErrorIs(t, err, contract.ErrNotWhitelisted)

	info, err = reader.GetPresaleInfo()
	require.NoError(t, err)
	assert.Equal(t, uint64(15), info.CurrentBlock)
	assert.Zero(t, info.TotalRaised)

	r.mustRun(cmd("mine"), "5")
	r.mustRun(cmd("buy"), "--from", "hive:alice", "20.0")

	deposit, err := reader.GetUserDeposits("hive:alice")
	require.NoError(t, err)
	assert.Equal(t, 20*sdk.One, deposit)
	listed, err := reader.IsWhitelisted("hive:alice")
	require.NoError(t, err)
	assert.False(t, listed)
	user, err := reader.GetUserInfo("hive:alice")
	require.NoError(t, err)
	assert.Equal(t, 20*sdk.One, user.Deposit)
}

func TestSharedReaderNeedsDeployment(t *testing.T) {
	cfg := defaultConfig()
	cfg.DataDir = t.TempDir()
	log, err := newLogger(LoggingConfig{Level: "warn", Format: "text"}, io.Discard)
	require.NoError(t, err)
	_, err = newSharedReader(cfg, log).GetPresaleInfo()
	require.ErrorIs(t, err, contract.ErrNotInitialized)
}
