package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"neuroviz/internal/engine"
	"neuroviz/internal/storage"
	"neuroviz/pkg/neuroviz"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "seed":
		return runSeed(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "list":
		return runList(ctx, args[1:])
	case "add-layer":
		return runAddLayer(ctx, args[1:])
	case "remove-layer":
		return runRemoveLayer(ctx, args[1:])
	case "add-neuron":
		return runAddNeuron(ctx, args[1:])
	case "remove-neuron":
		return runRemoveNeuron(ctx, args[1:])
	case "connect":
		return runConnect(ctx, args[1:])
	case "disconnect":
		return runDisconnect(ctx, args[1:])
	case "set":
		return runSet(ctx, args[1:])
	case "forward":
		return runForward(ctx, args[1:])
	case "train":
		return runTrain(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "import":
		return runImport(ctx, args[1:])
	case "delete":
		return runDelete(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: neurovizctl <seed|show|list|add-layer|remove-layer|add-neuron|remove-neuron|connect|disconnect|set|forward|train|reset|export|import|delete> [flags]", msg)
}

type commonFlags struct {
	storeKind *string
	dbPath    *string
	session   *string
	randSeed  *int64
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		storeKind: fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite"),
		dbPath:    fs.String("db-path", "neuroviz.db", "sqlite database path"),
		session:   fs.String("session", "default", "session name"),
		randSeed:  fs.Int64("rand-seed", 0, "fixed weight RNG seed (0 = time-based)"),
	}
}

func newClient(ctx context.Context, cf commonFlags) (*neuroviz.Client, error) {
	return neuroviz.New(ctx, neuroviz.Options{
		StoreKind: *cf.storeKind,
		DBPath:    *cf.dbPath,
		RandSeed:  *cf.randSeed,
	})
}

func runSeed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	net, err := client.Create(ctx, *cf.session)
	if err != nil {
		return err
	}
	fmt.Printf("seeded session=%s layers=%d connections=%d\n",
		*cf.session, len(net.Layers), len(net.Connections))
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	noColor := fs.Bool("no-color", false, "disable ANSI colors")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	net, ok, err := client.Get(ctx, *cf.session)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session not found: %s", *cf.session)
	}
	renderNetwork(os.Stdout, net, !*noColor)
	return nil
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	names, err := client.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runAddLayer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-layer", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	net, err := client.AddLayer(ctx, *cf.session)
	if err != nil {
		return err
	}
	fmt.Printf("layers=%d connections=%d\n", len(net.Layers), len(net.Connections))
	return nil
}

func runRemoveLayer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove-layer", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	net, err := client.RemoveLayer(ctx, *cf.session)
	if err != nil {
		return err
	}
	fmt.Printf("layers=%d connections=%d\n", len(net.Layers), len(net.Connections))
	return nil
}

func runAddNeuron(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-neuron", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	layer := fs.Int("layer", -1, "target layer index")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	net, err := client.AddNeuron(ctx, *cf.session, *layer)
	if err != nil {
		return err
	}
	fmt.Printf("layers=%d neurons=%d\n", len(net.Layers), countNeurons(net))
	return nil
}

func runRemoveNeuron(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove-neuron", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	id := fs.String("id", "", "neuron id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return usageError("remove-neuron requires -id")
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	net, err := client.RemoveNeuron(ctx, *cf.session, *id)
	if err != nil {
		return err
	}
	fmt.Printf("layers=%d neurons=%d\n", len(net.Layers), countNeurons(net))
	return nil
}

func runConnect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("connect", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	from := fs.String("from", "", "source neuron id")
	to := fs.String("to", "", "destination neuron id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return usageError("connect requires -from and -to")
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	net, err := client.Connect(ctx, *cf.session, *from, *to)
	if err != nil {
		return err
	}
	fmt.Printf("connections=%d\n", len(net.Connections))
	return nil
}

func runDisconnect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("disconnect", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	id := fs.String("id", "", "connection id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return usageError("disconnect requires -id")
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	net, err := client.Disconnect(ctx, *cf.session, *id)
	if err != nil {
		return err
	}
	fmt.Printf("connections=%d\n", len(net.Connections))
	return nil
}

func runSet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	neuronID := fs.String("neuron", "", "neuron id")
	connectionID := fs.String("connection", "", "connection id")
	key := fs.String("key", "", "field key: weight|bias|activation|target")
	value := fs.Float64("value", 0, "field value")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*neuronID == "") == (*connectionID == "") {
		return usageError("set requires exactly one of -neuron or -connection")
	}
	if *key == "" {
		return usageError("set requires -key")
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if *neuronID != "" {
		if _, err := client.SetNeuronField(ctx, *cf.session, *neuronID, *key, *value); err != nil {
			return err
		}
	} else {
		if _, err := client.SetConnectionField(ctx, *cf.session, *connectionID, *key, *value); err != nil {
			return err
		}
	}
	fmt.Printf("set %s=%s\n", *key, humanize.Ftoa(*value))
	return nil
}

func runForward(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forward", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	until := fs.Int("until", -1, "propagate through this layer only (-1 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if *until >= 0 {
		_, err = client.ForwardUntil(ctx, *cf.session, *until)
	} else {
		_, err = client.Forward(ctx, *cf.session)
	}
	if err != nil {
		return err
	}
	fmt.Println("forward propagation complete")
	return nil
}

func runTrain(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	rate := fs.Float64("rate", 0.5, "learning rate")
	steps := fs.Int("steps", 1, "training steps to run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *steps < 1 {
		return usageError("train requires -steps >= 1")
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	var history engine.LossHistory
	for i := 0; i < *steps; i++ {
		_, loss, err := client.Train(ctx, *cf.session, *rate)
		if err != nil {
			return err
		}
		history.Record(loss)
	}
	summary := history.Summary()
	fmt.Printf("steps=%s loss=%.6f avg=%.6f min=%.6f\n",
		humanize.Comma(int64(summary.Steps)), summary.Last, summary.Avg, summary.Min)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if _, err := client.Reset(ctx, *cf.session); err != nil {
		return err
	}
	fmt.Println("activations cleared")
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	data, err := client.Export(ctx, *cf.session)
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", *out, humanize.Bytes(uint64(len(data))))
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	in := fs.String("in", "", "input file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return usageError("import requires -in")
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	net, err := client.Import(ctx, *cf.session, data)
	if err != nil {
		return err
	}
	fmt.Printf("imported session=%s layers=%d connections=%d\n",
		*cf.session, len(net.Layers), len(net.Connections))
	return nil
}

func runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cf)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Delete(ctx, *cf.session); err != nil {
		return err
	}
	fmt.Printf("deleted session=%s\n", *cf.session)
	return nil
}
