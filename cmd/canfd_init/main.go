package main

import (
	"flag"
	"os"
	"sort"

	canfd "github.com/samsamfire/gocanfd"
	"github.com/samsamfire/gocanfd/pkg/config"
	"github.com/samsamfire/gocanfd/pkg/device"
	"github.com/samsamfire/gocanfd/pkg/imxrt"
	_ "github.com/samsamfire/gocanfd/pkg/mmio"
	"github.com/samsamfire/gocanfd/pkg/virtual"
	log "github.com/sirupsen/logrus"
)

// Runs the CAN-FD bring-up, by default as a dry run against simulated
// registers, and prints every register value that was programmed.

var DEFAULT_BACKEND = "virtual"

func main() {
	// Command line arguments
	configPath := flag.String("c", "", "configuration .ini file path, defaults are used if empty")
	verbose := flag.Bool("v", false, "debug logging")
	tdcFail := flag.Bool("tdcfail", false, "simulate a transceiver delay compensation failure")
	export := flag.Bool("export", false, "print the effective configuration and exit")
	backend := flag.String("b", DEFAULT_BACKEND, "register backend e.g. virtual,mmio (mmio needs a TinyGo build)")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	conf := config.Default()
	if *configPath != "" {
		var err error
		conf, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("[MAIN] failed to load configuration %v : %v", *configPath, err)
		}
	}
	if *export {
		if _, err := conf.WriteTo(os.Stdout); err != nil {
			log.Fatalf("[MAIN] failed to export configuration : %v", err)
		}
		return
	}

	ccm := newRegisters(*backend, imxrt.CCM_BASE)
	iomuxc := newRegisters(*backend, imxrt.IOMUXC_BASE)
	can3 := newRegisters(*backend, imxrt.CAN3_BASE)
	if flexcan, ok := can3.(*virtual.FlexCAN); ok {
		flexcan.InjectTDCFail(*tdcFail)
	}

	dev := device.New(can3, conf)
	dev.InitClocks(ccm)
	dev.InitPins(iomuxc)
	err := dev.Init()

	dump("CCM", ccm)
	dump("IOMUXC", iomuxc)
	dump("CAN3", can3)
	if err != nil {
		log.Errorf("[MAIN] initialization failed in state %v : %v", dev.State(), err)
		os.Exit(1)
	}
	classical, fd, tdc := dev.Timing()
	log.Infof("[MAIN] classical %v bit/s (prescaler %v) | fd %v bit/s (prescaler %v) | tdc offset %v",
		classical.Bitrate(conf.Clock.Hz()), classical.Prescaler, fd.Bitrate(conf.Clock.Hz()), fd.Prescaler, tdc.Offset)
}

func newRegisters(backend string, base uintptr) canfd.Registers {
	regs, err := canfd.NewRegisters(backend, base)
	if err != nil {
		log.Fatalf("[MAIN] no register access at x%x : %v", base, err)
	}
	return regs
}

func dump(name string, regs canfd.Registers) {
	block, ok := regs.(interface{ Snapshot() map[uintptr]uint32 })
	if !ok {
		return
	}
	snapshot := block.Snapshot()
	offsets := make([]uintptr, 0, len(snapshot))
	for offset := range snapshot {
		offsets = append(offsets, offset)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	for _, offset := range offsets {
		log.Infof("[%v] x%03x = x%08x", name, offset, snapshot[offset])
	}
}
