// Command styliqoctl runs catalog and order maintenance against the
// configured store: seeding, duplicate cleanup, category purges and order
// exports.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/admin"
	"github.com/wichananm65/styliqo-backend/internal/banner"
	"github.com/wichananm65/styliqo-backend/internal/category"
	"github.com/wichananm65/styliqo-backend/internal/config"
	"github.com/wichananm65/styliqo-backend/internal/events"
	"github.com/wichananm65/styliqo-backend/internal/infrastructure/storage"
	"github.com/wichananm65/styliqo-backend/internal/logging"
	"github.com/wichananm65/styliqo-backend/internal/order"
	"github.com/wichananm65/styliqo-backend/internal/product"
)

const usage = `usage: styliqoctl <command> [flags]

commands:
  seed                         load the default catalog, categories and banners into empty stores
  dedupe [-yes]                delete products whose titles repeat, keeping the first of each
  purge [-categories a,b] [-yes]
                               delete every product in the named categories (default Sarees,Kurtis)
  export [-o orders.xlsx]      write all orders to a spreadsheet
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, "text")

	if err := run(context.Background(), cfg, log, os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		var ce *admin.ConfirmationError
		if errors.As(err, &ce) {
			fmt.Fprintln(os.Stdout, "aborted")
			os.Exit(1)
		}
		log.WithError(err).Fatal(os.Args[1] + " failed")
	}
}

func run(ctx context.Context, cfg config.Config, log logrus.FieldLogger, cmd string, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(out)
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	cats := fs.String("categories", strings.Join(admin.DefaultPurgeCategories, ","), "comma separated categories to purge")
	dest := fs.String("o", admin.ExportFilename, "export destination")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repos.Close(context.Background())

	products := product.NewService(repos.Products, repos.Blobs, log, cfg.BackendTimeout)
	var confirm admin.Confirmer = promptConfirmer(in, out)
	if *yes {
		confirm = admin.Confirmed(true)
	}

	switch cmd {
	case "seed":
		n, err := products.Seed(ctx, product.SeedCatalog(time.Now()))
		if err != nil {
			return err
		}
		if err := category.NewService(repos.Categories, log).SeedDefaults(ctx); err != nil {
			return err
		}
		if err := banner.NewService(repos.Banners, log).SeedDefaults(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "seeded %d products\n", n)
	case "dedupe":
		res, err := admin.NewCleaner(products, log).RemoveDuplicates(ctx, confirm)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "scanned %d products, removed %d\n", res.Scanned, res.Removed)
	case "purge":
		res, err := admin.NewCleaner(products, log).PurgeCategories(ctx, splitList(*cats), confirm)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "scanned %d products, removed %d\n", res.Scanned, res.Removed)
	case "export":
		orders, err := order.NewService(repos.Orders, events.NewLogPublisher(log), log, cfg.BackendTimeout).ListAll(ctx)
		if err != nil {
			return err
		}
		f, err := os.Create(*dest)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := admin.WriteOrdersXLSX(f, orders); err != nil {
			return err
		}
		fmt.Fprintf(out, "exported %d orders to %s\n", len(orders), *dest)
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// promptConfirmer asks on out and accepts "y" or "yes" from in.
func promptConfirmer(in io.Reader, out io.Writer) admin.ConfirmFunc {
	r := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := r.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
