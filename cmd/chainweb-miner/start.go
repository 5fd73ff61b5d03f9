package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LabMember-001/chainweb-node/backend"
	"github.com/LabMember-001/chainweb-node/config"
	"github.com/LabMember-001/chainweb-node/consensus/chainwebpow"
	"github.com/LabMember-001/chainweb-node/core"
	"github.com/LabMember-001/chainweb-node/log"
	"github.com/LabMember-001/chainweb-node/types"
	"github.com/LabMember-001/chainweb-node/version"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "start mining against the in-memory reference backend",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	versionName := viper.GetString(config.VERSION_NAME)
	v, err := version.LookupTestVersion(versionName)
	if err != nil {
		return err
	}

	genesis := make(types.Cut, v.Chains().Cardinality())
	dbs := make(map[types.ChainId]*backend.HeaderDb, v.Chains().Cardinality())
	for cidIface := range v.Chains().Iter() {
		cid := cidIface.(types.ChainId)
		genesis[cid] = &types.BlockHeader{ChainId: cid, Target: v.MaxTarget}
		dbs[cid] = backend.NewHeaderDb(v.MaxTarget)
	}

	cutStore := backend.NewCutStore(genesis)
	dbSet := backend.NewHeaderDbSet(dbs)
	executor := backend.NewExecutor()
	payloadStore := backend.NewPayloadStore()

	extender, err := core.NewCutExtender(v, dbSet, executor, payloadStore, chainwebpow.NewTargetCache())
	if err != nil {
		return err
	}

	minerInfo := core.MinerInfo{Identity: viper.GetString(config.MINER_IDENTITY)}
	loop := core.NewMinerLoop(v, cutStore, extender, core.MinerConfig{MinerInfo: minerInfo})
	loop.OnMinedBlock = func(ev core.NewMinedBlock) {
		log.WithField("chain", ev.Header.ChainId).
			WithField("height", ev.Header.Height).
			Infof("created new block %d", ev.Header.Height)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("received shutdown signal, stopping miner")
		cancel()
	}()

	err = loop.Run(ctx)
	if err != nil && ctx.Err() != nil {
		return nil // normal shutdown
	}
	return err
}
