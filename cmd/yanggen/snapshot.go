package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/yanggen/adapters/snapshot"
	"github.com/artpar/yanggen/ports"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the model snapshot cache",
	Long: `Store captured model trees in a local cache so analyze can run
against them later without the original file.

Examples:
  yanggen snapshot save --file router.yaml --name router-v2
  yanggen snapshot list
  yanggen snapshot delete --name router-v2`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Validate a snapshot file and store it in the cache",
	RunE:  runSnapshotSave,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached snapshots, newest first",
	RunE:  runSnapshotList,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove a snapshot from the cache",
	RunE:  runSnapshotDelete,
}

var (
	snapshotFile      string
	snapshotName      string
	snapshotCachePath string
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotDeleteCmd)

	snapshotCmd.PersistentFlags().StringVar(&snapshotCachePath, "cache", "", "snapshot cache database (default from config)")

	snapshotSaveCmd.Flags().StringVar(&snapshotFile, "file", "", "model snapshot file (YAML, required)")
	snapshotSaveCmd.Flags().StringVar(&snapshotName, "name", "", "name to store the snapshot under (default: module name)")
	snapshotSaveCmd.MarkFlagRequired("file")

	snapshotDeleteCmd.Flags().StringVar(&snapshotName, "name", "", "snapshot name (required)")
	snapshotDeleteCmd.MarkFlagRequired("name")
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(snapshotFile)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	// Reject documents that would not survive analysis.
	root, err := snapshot.Parse(data)
	if err != nil {
		return err
	}

	name := snapshotName
	if name == "" {
		name = root.Name()
	}

	store, closeStore, err := openSnapshotStore(cfg, snapshotCachePath)
	if err != nil {
		return err
	}
	defer closeStore()

	snap := ports.Snapshot{
		Name:      name,
		Document:  data,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Save(context.Background(), snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	fmt.Fprintf(os.Stderr, "%s Saved snapshot %q (%d bytes)\n", checkMark, name, len(data))
	return nil
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openSnapshotStore(cfg, snapshotCachePath)
	if err != nil {
		return err
	}
	defer closeStore()

	snaps, err := store.List(context.Background())
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots cached.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCREATED")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openSnapshotStore(cfg, snapshotCachePath)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(context.Background(), snapshotName); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", snapshotName, err)
	}

	fmt.Fprintf(os.Stderr, "%s Deleted snapshot %q\n", checkMark, snapshotName)
	return nil
}
