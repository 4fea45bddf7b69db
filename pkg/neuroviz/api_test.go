package neuroviz

import (
	"context"
	"errors"
	"testing"

	"neuroviz/internal/model"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(context.Background(), Options{RandSeed: 42})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClientCreateAndGet(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	created, err := client.Create(ctx, "demo")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.Layers) != 3 || len(created.Connections) != 6 {
		t.Fatalf("unexpected seed: layers=%d connections=%d", len(created.Layers), len(created.Connections))
	}

	loaded, ok, err := client.Get(ctx, "demo")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected session to exist")
	}
	if len(loaded.Layers) != 3 {
		t.Fatalf("unexpected layer count: %d", len(loaded.Layers))
	}
}

func TestClientMissingSession(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Forward(ctx, "ghost"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("forward: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := client.AddLayer(ctx, "ghost"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("add layer: expected ErrSessionNotFound, got %v", err)
	}
	if _, _, err := client.Train(ctx, "ghost", 0.5); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("train: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := client.Export(ctx, "ghost"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("export: expected ErrSessionNotFound, got %v", err)
	}
}

func TestClientEditFlowPersists(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Create(ctx, "demo"); err != nil {
		t.Fatalf("create: %v", err)
	}

	edited, err := client.AddLayer(ctx, "demo")
	if err != nil {
		t.Fatalf("add layer: %v", err)
	}
	if len(edited.Layers) != 4 {
		t.Fatalf("expected 4 layers after add, got %d", len(edited.Layers))
	}
	if err := model.Validate(edited); err != nil {
		t.Fatalf("edited network invalid: %v", err)
	}

	// Mutations survive a reload through the store.
	reloaded, ok, err := client.Get(ctx, "demo")
	if err != nil || !ok {
		t.Fatalf("reload: ok=%v err=%v", ok, err)
	}
	if len(reloaded.Layers) != 4 {
		t.Fatalf("edit did not persist: %d layers", len(reloaded.Layers))
	}

	withNeuron, err := client.AddNeuron(ctx, "demo", 1)
	if err != nil {
		t.Fatalf("add neuron: %v", err)
	}
	if len(withNeuron.Layers[1].Neurons) != 3 {
		t.Fatalf("expected 3 neurons in layer 1, got %d", len(withNeuron.Layers[1].Neurons))
	}

	back, err := client.RemoveLayer(ctx, "demo")
	if err != nil {
		t.Fatalf("remove layer: %v", err)
	}
	if len(back.Layers) != 3 {
		t.Fatalf("expected 3 layers after remove, got %d", len(back.Layers))
	}
}

func TestClientNoOpEditsKeepSessionValid(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Create(ctx, "demo"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Self edges, duplicates and unknown ids are silently refused.
	net, err := client.Connect(ctx, "demo", "in-0", "in-0")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if len(net.Connections) != 6 {
		t.Fatalf("self edge must be a no-op, got %d connections", len(net.Connections))
	}

	net, err = client.RemoveNeuron(ctx, "demo", "ghost")
	if err != nil {
		t.Fatalf("remove neuron: %v", err)
	}
	if err := model.Validate(net); err != nil {
		t.Fatalf("network invalid after no-op: %v", err)
	}
}

func TestClientFieldEdits(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Create(ctx, "demo"); err != nil {
		t.Fatalf("create: %v", err)
	}

	net, err := client.SetNeuronField(ctx, "demo", "hid-0", "bias", 0.15)
	if err != nil {
		t.Fatalf("set bias: %v", err)
	}
	if got := net.Layers[1].Neurons[0].Bias; got != 0.15 {
		t.Fatalf("bias = %v, want 0.15", got)
	}

	net, err = client.SetConnectionField(ctx, "demo", "conn-0", "weight", -0.9)
	if err != nil {
		t.Fatalf("set weight: %v", err)
	}
	if got := net.Connections[0].Weight; got != -0.9 {
		t.Fatalf("weight = %v, want -0.9", got)
	}
}

func TestClientTrainAndReset(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Create(ctx, "demo"); err != nil {
		t.Fatalf("create: %v", err)
	}

	trained, loss, err := client.Train(ctx, "demo", 0.5)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if loss <= 0 {
		t.Fatalf("expected positive loss, got %v", loss)
	}
	if trained.Layers[2].Neurons[0].Delta == nil {
		t.Fatal("training must record the output delta")
	}

	reset, err := client.Reset(ctx, "demo")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset.Layers[2].Neurons[0].Activation != 0 {
		t.Fatal("reset must clear computed activations")
	}
	if reset.Layers[2].Neurons[0].Delta != nil {
		t.Fatal("reset must clear deltas")
	}
	if reset.Layers[0].Neurons[0].Activation != 1 {
		t.Fatal("reset must keep input activations")
	}
}

func TestClientExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Create(ctx, "demo"); err != nil {
		t.Fatalf("create: %v", err)
	}
	data, err := client.Export(ctx, "demo")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	imported, err := client.Import(ctx, "copy", data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(imported.Layers) != 3 || len(imported.Connections) != 6 {
		t.Fatalf("unexpected import: layers=%d connections=%d", len(imported.Layers), len(imported.Connections))
	}

	names, err := client.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 sessions, got %+v", names)
	}
}

func TestClientImportRejectsBadDocument(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Create(ctx, "demo"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := client.Import(ctx, "demo", []byte(`{"layers": []}`)); err == nil {
		t.Fatal("expected validation error")
	}

	// The previous snapshot survives the failed import.
	net, ok, err := client.Get(ctx, "demo")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(net.Layers) != 3 {
		t.Fatalf("session corrupted by failed import: %d layers", len(net.Layers))
	}
}

func TestClientDelete(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Create(ctx, "demo"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := client.Delete(ctx, "demo"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, err := client.Get(ctx, "demo"); err != nil || ok {
		t.Fatalf("expected miss after delete: ok=%v err=%v", ok, err)
	}
}

func TestClientRejectsUnknownStore(t *testing.T) {
	if _, err := New(context.Background(), Options{StoreKind: "redis"}); err == nil {
		t.Fatal("expected error for unsupported store")
	}
}
