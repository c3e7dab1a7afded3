package command

import (
	"testing"

	"foodshare/entity"
)

func TestDemandRoundTrip(t *testing.T) {
	t.Parallel()

	token := EncodeDemand(DemandTake, "telegram", "42", "listing-1")
	if token != "take|telegram|42|listing-1" {
		t.Fatalf("unexpected token: %q", token)
	}

	cmd, err := DecodeDemand(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cmd.Name != DemandTake {
		t.Fatalf("name = %q, want %q", cmd.Name, DemandTake)
	}
	if cmd.Arg(0) != "telegram" || cmd.Arg(1) != "42" || cmd.Arg(2) != "listing-1" {
		t.Fatalf("args = %v", cmd.Args)
	}
}

func TestSupplyRoundTrip(t *testing.T) {
	t.Parallel()

	token := EncodeSupply(SupplyApproveBooking, "listing-9")
	if token != "c|approve_booking|listing-9" {
		t.Fatalf("unexpected token: %q", token)
	}

	cmd, err := DecodeSupply(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cmd.Name != SupplyApproveBooking || cmd.Arg(0) != "listing-9" {
		t.Fatalf("decoded %q %v", cmd.Name, cmd.Args)
	}
}

func TestDecodeRejectsUnknownNames(t *testing.T) {
	t.Parallel()

	if _, err := DecodeDemand("not_a_command|x"); err == nil {
		t.Fatal("expected error for unknown demand name")
	}
	if _, err := DecodeSupply("c|not_a_command"); err == nil {
		t.Fatal("expected error for unknown supply name")
	}
	if _, err := DecodeSupply("approve_booking|id"); err == nil {
		t.Fatal("expected error for missing supply marker")
	}
}

func TestNamespacesAreDisjoint(t *testing.T) {
	t.Parallel()

	// A supply token must never decode as a demand command even when the
	// inner name collides (set_lang lives in both sets).
	token := EncodeSupply(SupplySetLanguage, "ru")
	if !IsSupplyToken(token) {
		t.Fatalf("IsSupplyToken(%q) = false", token)
	}
	if cmd, err := DecodeDemand(token); err == nil {
		t.Fatalf("demand decode accepted supply token as %q", cmd.Name)
	}

	demandToken := EncodeDemand(DemandSetLanguage, "ru")
	if IsSupplyToken(demandToken) {
		t.Fatalf("IsSupplyToken(%q) = true", demandToken)
	}
}

func TestEncodeFollowsWorkflow(t *testing.T) {
	t.Parallel()

	cmd := entity.NewCommand(SupplySetState, "ready_to_post")
	if got := Encode(entity.WorkflowSupply, cmd); got != "c|set_state|ready_to_post" {
		t.Fatalf("supply encode = %q", got)
	}
	dcmd := entity.NewCommand(DemandBooked, "telegram", "1", "l1")
	if got := Encode(entity.WorkflowDemand, dcmd); got != "bkd|telegram|1|l1" {
		t.Fatalf("demand encode = %q", got)
	}
}

func TestArgOutOfRange(t *testing.T) {
	t.Parallel()

	cmd, err := DecodeDemand("default")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cmd.Arg(0) != "" || cmd.Arg(5) != "" {
		t.Fatal("missing args must read as empty strings")
	}
}
