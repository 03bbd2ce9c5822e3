package main

import (
	"avatar-chat/infrastructure/storage"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	ChatDB  string `envconfig:"BADGER_CHAT_FILEPATH" default:"./data/chat"`
	LocalDB string `envconfig:"BADGER_LOCAL_FILEPATH" default:"./data/local"`
}

func main() {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatal("Config error: ", err)
	}
	local := flag.Bool("local", false, "Inspect the local database (recent avatars) instead of the chat one")
	prefix := flag.String("prefix", "", "Only keys starting with this prefix, e.g. msg:<chat_id>:")
	flag.Parse()

	path := config.ChatDB
	if *local {
		path = config.LocalDB
	}

	// Read-only and lock bypass so a running chat process keeps its database
	db, err := badger.Open(badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "ID", "Owner", "At", "Detail"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			record, err := storage.DescribeRecord(item.KeyCopy(nil), value)
			if err != nil {
				// Keep listing, a corrupted record must not hide the others
				fmt.Fprintf(os.Stderr, "Unable to decode key %s: %v\n", item.Key(), err)
				continue
			}
			at := ""
			if !record.At.IsZero() {
				at = record.At.Format("2006-01-02 15:04:05")
			}
			table.Append([]string{record.Key, record.Kind, record.ID, record.Owner, at, record.Detail})
			rows++
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("%d records\n", rows)
}
