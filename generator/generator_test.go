package generator

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"omibyte.io/nvic/nvic"
	"omibyte.io/nvic/svd"
)

func testDevice() svd.DeviceElement {
	return svd.DeviceElement{
		Name: "STM32F103",
		CPU:  svd.CPUElement{Name: "CM3", NVICPriorityBits: 4},
		Peripherals: svd.PeripheralsElement{Elements: []svd.PeripheralElement{
			{
				Name:        "USART2",
				DerivedFrom: "USART1",
				Interrupts:  []svd.InterruptElement{{Name: "USART2", Value: 38}},
			},
			{
				Name:        "USART1",
				Description: "Universal synchronous\n      asynchronous receiver transmitter",
				Group:       "USART",
				Interrupts:  []svd.InterruptElement{{Name: "USART1", Description: "USART1 global interrupt", Value: 37}},
			},
			{
				Name:       "WWDG",
				Interrupts: []svd.InterruptElement{{Name: "WWDG", Description: "Window Watchdog interrupt", Value: 0}},
			},
			{
				Name:       "TIM1",
				Interrupts: []svd.InterruptElement{{Name: "TIM1_BRK", Value: 24}},
			},
			{
				Name:        "TIM9",
				DerivedFrom: "TIM1",
				Interrupts:  []svd.InterruptElement{{Name: "TIM1_BRK", Value: 24}},
			},
		}},
	}
}

func TestInterrupts(t *testing.T) {
	interrupts, err := New(testDevice(), Options{}).Interrupts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Interrupt{
		{Ident: "WWDG", Description: "Window Watchdog interrupt", Peripheral: "WWDG", Value: 0},
		{Ident: "TIM1_BRK", Peripheral: "TIM1", Value: 24},
		{Ident: "USART1", Description: "USART1 global interrupt", Peripheral: "USART1", Value: 37},
		{Ident: "USART2", Description: "Universal synchronous asynchronous receiver transmitter", Peripheral: "USART2", Value: 38},
	}
	if len(interrupts) != len(want) {
		t.Fatalf("expected %d interrupts, got %d: %+v", len(want), len(interrupts), interrupts)
	}
	for i := range want {
		if interrupts[i] != want[i] {
			t.Errorf("interrupt %d: expected %+v, got %+v", i, want[i], interrupts[i])
		}
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	g := New(testDevice(), Options{Grouping: nvic.Group8Sub2, Source: "STM32F103.svd"})
	if err := g.Generate(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src := buf.String()

	for _, line := range []string{
		"// Code generated by nvicctl from STM32F103.svd. DO NOT EDIT.",
		"package stm32f103",
		`import "omibyte.io/nvic/nvic"`,
		"\tNumberOfInterrupts: 39,\n",
		"\tGrouping:           nvic.Group8Sub2,\n",
	} {
		if !strings.Contains(src, line) {
			t.Errorf("expected output to contain %q:\n%s", line, src)
		}
	}

	for _, pattern := range []string{
		`\t// Window Watchdog interrupt\n\tWWDG +nvic\.Interrupt = 0\n`,
		`\tTIM1_BRK +nvic\.Interrupt = 24\n`,
		`\t// Universal synchronous asynchronous receiver transmitter\n\tUSART2 +nvic\.Interrupt = 38\n`,
	} {
		if !regexp.MustCompile(pattern).MatchString(src) {
			t.Errorf("expected output to match %s:\n%s", pattern, src)
		}
	}

	if _, err := parser.ParseFile(token.NewFileSet(), FileName, src, parser.ParseComments); err != nil {
		t.Errorf("generated source does not parse: %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stm32f103")
	fname, err := New(testDevice(), Options{}).WriteFile(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fname != filepath.Join(dir, FileName) {
		t.Errorf("unexpected path %s", fname)
	}
	if buf, err := os.ReadFile(fname); err != nil || !bytes.Contains(buf, []byte("nvic.Group16Sub0")) {
		t.Errorf("expected default grouping in %s (%v)", fname, err)
	}

	bad := testDevice()
	bad.CPU.NVICPriorityBits = 3
	if _, err = New(bad, Options{}).WriteFile(dir); !errors.Is(err, ErrUnsupportedPriority) {
		t.Errorf("expected ErrUnsupportedPriority, got %v", err)
	}
	if _, err = os.Stat(fname); !os.IsNotExist(err) {
		t.Errorf("expected failed generation to remove %s", fname)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *svd.DeviceElement)
		err    error
	}{
		{"unknown base", func(d *svd.DeviceElement) {
			d.Peripherals.Elements[0].DerivedFrom = "UART9"
		}, ErrUnknownBase},
		{"self derivation", func(d *svd.DeviceElement) {
			d.Peripherals.Elements[2].DerivedFrom = "WWDG"
		}, ErrDerivationCycle},
		{"cycle", func(d *svd.DeviceElement) {
			d.Peripherals.Elements[1].DerivedFrom = "USART2"
		}, ErrDerivationCycle},
		{"conflict", func(d *svd.DeviceElement) {
			d.Peripherals.Elements[4].Interrupts[0].Value = 25
		}, ErrConflictingInterrupt},
		{"identifier collision", func(d *svd.DeviceElement) {
			d.Peripherals.Elements[3].Interrupts = append(d.Peripherals.Elements[3].Interrupts,
				svd.InterruptElement{Name: "TIM1-UP", Value: 1},
				svd.InterruptElement{Name: "TIM1_UP", Value: 2})
		}, ErrConflictingIdent},
		{"case collision", func(d *svd.DeviceElement) {
			d.Peripherals.Elements[1].Interrupts = append(d.Peripherals.Elements[1].Interrupts,
				svd.InterruptElement{Name: "uart", Value: 3},
				svd.InterruptElement{Name: "Uart", Value: 4})
		}, ErrConflictingIdent},
		{"beyond bank", func(d *svd.DeviceElement) {
			d.Peripherals.Elements[3].Interrupts[0].Value = nvic.MaxInterrupts
		}, ErrTooManyInterrupts},
		{"priority bits", func(d *svd.DeviceElement) {
			d.CPU.NVICPriorityBits = 8
		}, ErrUnsupportedPriority},
		{"no interrupts", func(d *svd.DeviceElement) {
			d.Peripherals.Elements = nil
		}, ErrNoInterrupts},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			device := testDevice()
			tc.mutate(&device)
			if err := New(device, Options{}).Generate(&bytes.Buffer{}); !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestIdentifiers(t *testing.T) {
	tests := map[string]string{
		"USART1":         "USART1",
		"TIM1_UP_TIM10":  "TIM1_UP_TIM10",
		"DMA1 Channel1":  "DMA1_Channel1",
		"2ND_TIMER":      "IRQ_2ND_TIMER",
		"can1-rx0":       "Can1_rx0",
		"":               "IRQ_",
		"  RTC_Alarm  ":  "RTC_Alarm",
		"EXTI15-10":      "EXTI15_10",
		"OTG_FS_WKUP.IT": "OTG_FS_WKUP_IT",
		"éclair":         "Éclair",
		"ñ_IRQ":          "Ñ_IRQ",
		"°C":             "IRQ__C",
	}
	for name, want := range tests {
		if got := identifier(name); got != want {
			t.Errorf("%q: expected %q, got %q", name, want, got)
		}
	}

	if p := packageName("STM32F103-xB"); p != "stm32f103xb" {
		t.Errorf("unexpected package name %q", p)
	}
	if p := packageName("5xx"); p != "device5xx" {
		t.Errorf("unexpected package name %q", p)
	}
}
