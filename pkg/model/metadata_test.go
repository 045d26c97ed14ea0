package model

import (
	"encoding/json"
	"testing"
)

func TestMetadataRoundTripPreservesOrder(t *testing.T) {
	src := `{"zeta":"last","alpha":1,"nested":{"b":true,"a":null},"list":[1,"two",{"x":3}]}`

	var doc Metadata
	if err := json.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != src {
		t.Fatalf("order not preserved:\n in: %s\nout: %s", src, out)
	}
}

func TestMetadataEmptyContainersRoundTrip(t *testing.T) {
	src := `{"attributes":[],"properties":{},"name":"x"}`

	var doc Metadata
	if err := json.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	attrs, ok := doc.Get("attributes")
	if !ok {
		t.Fatal("attributes missing")
	}
	if arr, ok := attrs.([]any); !ok || arr == nil {
		t.Fatalf("empty array decoded as %#v", attrs)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != src {
		t.Fatalf("lossy round trip:\n in: %s\nout: %s", src, out)
	}
}

func TestMetadataLargeNumbers(t *testing.T) {
	src := `{"supply":"115792089237316195423570985008687907853269984665640564039457584007913129639935","id":18446744073709551615}`

	var doc Metadata
	if err := json.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	id, ok := doc.Get("id")
	if !ok {
		t.Fatal("id missing")
	}
	if n, ok := id.(json.Number); !ok || n.String() != "18446744073709551615" {
		t.Fatalf("large number drifted: %#v", id)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != src {
		t.Fatalf("numeric round trip drifted:\n in: %s\nout: %s", src, out)
	}
}

func TestMetadataGetSet(t *testing.T) {
	var doc Metadata
	doc.Set("name", "polygon")
	doc.Set("tier", "gold")
	doc.Set("name", "amoy") // replace in place

	if len(doc) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(doc))
	}
	if v, _ := doc.GetString("name"); v != "amoy" {
		t.Fatalf("unexpected name: %s", v)
	}
	if doc[0].Key != "name" || doc[1].Key != "tier" {
		t.Fatalf("field order changed: %#v", doc)
	}
	if _, ok := doc.Get("missing"); ok {
		t.Fatal("missing key reported present")
	}
}

func TestMetadataRejectsNonObject(t *testing.T) {
	var doc Metadata
	if err := json.Unmarshal([]byte(`[1,2]`), &doc); err == nil {
		t.Fatal("expected error for non-object document")
	}
}
