package svd

import (
	"encoding/xml"
	"strings"
	"testing"
)

const testDevice = `<?xml version="1.0" encoding="utf-8"?>
<device schemaVersion="1.1">
  <name>STM32F103</name>
  <version>1.1</version>
  <cpu>
    <name>CM3</name>
    <revision>r1p1</revision>
    <endian>little</endian>
    <nvicPrioBits>4</nvicPrioBits>
  </cpu>
  <peripherals>
    <peripheral>
      <name>USART1</name>
      <description>Universal synchronous asynchronous receiver transmitter</description>
      <groupName>USART</groupName>
      <baseAddress>0x40013800</baseAddress>
      <interrupt>
        <name>USART1</name>
        <description>USART1 global interrupt</description>
        <value>37</value>
      </interrupt>
    </peripheral>
    <peripheral derivedFrom="USART1">
      <name>USART2</name>
      <baseAddress>0x40004400</baseAddress>
      <interrupt>
        <name>USART2</name>
        <value>0x26</value>
      </interrupt>
    </peripheral>
  </peripherals>
</device>`

func TestDecode(t *testing.T) {
	device, err := Decode(strings.NewReader(testDevice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if device.Name != "STM32F103" || device.CPU.Name != "CM3" {
		t.Errorf("unexpected device %s / %s", device.Name, device.CPU.Name)
	}
	if device.CPU.NVICPriorityBits != 4 {
		t.Errorf("expected 4 priority bits, got %d", device.CPU.NVICPriorityBits)
	}
	if n := len(device.Peripherals.Elements); n != 2 {
		t.Fatalf("expected 2 peripherals, got %d", n)
	}

	i, ok := device.Peripherals.Find("USART2")
	if !ok {
		t.Fatal("expected USART2")
	}
	usart2 := device.Peripherals.Elements[i]
	if usart2.DerivedFrom != "USART1" || usart2.BaseAddress != 0x40004400 {
		t.Errorf("unexpected USART2 %+v", usart2)
	}
	if usart2.Interrupts[0].Value != 38 {
		t.Errorf("expected hex interrupt value 38, got %d", usart2.Interrupts[0].Value)
	}

	if _, ok = device.Peripherals.Find(""); ok {
		t.Errorf("expected empty name not to match")
	}
}

func TestIntegerNotations(t *testing.T) {
	tests := []struct {
		src  string
		want Integer
	}{
		{"<v>42</v>", 42},
		{"<v> 0x2A </v>", 42},
		{"<v>0X2a</v>", 42},
		{"<v>#101010</v>", 42},
	}

	for _, tc := range tests {
		var v struct {
			V Integer `xml:"v"`
		}
		if err := decodeString("<r>"+tc.src+"</r>", &v); err != nil {
			t.Errorf("%s: unexpected error: %v", tc.src, err)
			continue
		}
		if v.V != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.src, tc.want, v.V)
		}
	}

	var v struct {
		V Integer `xml:"v"`
	}
	if err := decodeString("<r><v>forty</v></r>", &v); err == nil {
		t.Errorf("expected invalid integer to fail")
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode(strings.NewReader("<device><name>")); err == nil {
		t.Errorf("expected malformed document to fail")
	}
}

func decodeString(s string, v any) error {
	return xml.NewDecoder(strings.NewReader(s)).Decode(v)
}
