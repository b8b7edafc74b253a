// Package main provides the Hadamard CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/hadamard-ml/hadamard/internal/backend/cpu"
	"github.com/hadamard-ml/hadamard/internal/backend/gpu"
	"github.com/hadamard-ml/hadamard/internal/hub"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	switch flag.Arg(0) {
	case "version":
		fmt.Printf("Hadamard %s\n", version)
	case "devices":
		printDevices()
	case "models":
		printModels()
	case "":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("Hadamard - element-wise tensor operations for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  devices    List compute devices")
	fmt.Println("  models     List bundled model fixtures")
}

func printDevices() {
	fmt.Println("CPU: available")

	if !gpu.Available() {
		fmt.Println("WebGPU: not available")
		return
	}
	adapters, err := gpu.ListAdapters()
	if err != nil {
		klog.Errorf("webgpu adapter listing failed: %v", err)
		fmt.Println("WebGPU: error listing adapters")
		return
	}
	for _, a := range adapters {
		fmt.Printf("WebGPU: %s (%s)\n", a.Name, a.VendorName)
	}
}

func printModels() {
	registry := hub.DefaultModels[*cpu.CPUBackend]()
	for _, name := range registry.Names() {
		fmt.Println(name)
	}
}
