package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxBuildings int = 20
var maxDevices int = 1000
var liveStatusSweeps int = 5
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	buildingIDs := make([]int, maxBuildings)
	for i := 0; i < maxBuildings; i++ {
		buildingIDs[i] = createBuilding(fmt.Sprintf("Building %v (%v)", i, uuid.NewString()[:8]))
	}
	fmt.Printf("created %v buildings\n", maxBuildings)

	var startTime time.Time
	var usedTime time.Duration

	deviceIDs := make([]int, maxDevices)
	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			deviceIDs[i] = createDevice(i, buildingIDs[i%maxBuildings])
			fmt.Printf("\rcreated device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(deviceIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices*3)/usedTime.Seconds(),
	)

	// full sweeps probe every device, so measure them on their own
	startTime = time.Now()
	for i := 0; i < liveStatusSweeps; i++ {
		getPath("/switches/live-status")
		fmt.Printf("\rran live-status sweep %v", i+1)
	}
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rran %v live-status sweeps over %v devices: used time=%v seconds, %v seconds/sweep\n",
		liveStatusSweeps, maxDevices, usedTime.Seconds(), usedTime.Seconds()/float64(liveStatusSweeps),
	)
}

func flipCoin() bool {
	return rnd.Int31n(100000)%2 == 0
}

// loopback addresses answer ping instantly, keeping sweeps bounded by the
// engine rather than the network
func loopbackAddr(i int) string {
	return fmt.Sprintf("127.0.%v.%v", (i/250)+1, (i%250)+1)
}

func postJSON(path string, payload map[string]any) map[string]any {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("POST %v: status %v", path, resp.StatusCode))
	}

	var decoded map[string]any
	json.NewDecoder(resp.Body).Decode(&decoded)
	return decoded
}

func getPath(path string) {
	resp, err := http.Get(fmt.Sprintf("http://%s%s", httpHostPort, path))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("\nresponse status code != 200: %v\n", resp)
	}
}

func createBuilding(name string) int {
	decoded := postJSON("/buildings", map[string]any{
		"name":     name,
		"location": fmt.Sprintf("Floor %v", rnd.Int31n(20)),
	})
	return int(decoded["ID"].(float64))
}

func createDevice(i int, buildingID int) int {
	decoded := postJSON("/devices", map[string]any{
		"name":        fmt.Sprintf("sw-%v-%v", i, uuid.NewString()[:8]),
		"ip_address":  loopbackAddr(i),
		"building_id": buildingID,
	})
	return int(decoded["ID"].(float64))
}

func doAction(deviceID int) {
	actions := []func(){
		genGetHistoryAction(deviceID),
		genGetAlertsAction(),
		genGetStatsAction(),
	}
	actionNames := []string{
		"GetHistory",
		"GetAlerts",
		"GetStats",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for device %v", actionNames[index], deviceID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genGetHistoryAction(deviceID int) func() {
	return func() {
		getPath(fmt.Sprintf("/devices/%v/history?limit=20", deviceID))
	}
}

func genGetAlertsAction() func() {
	return func() {
		if flipCoin() {
			getPath("/alerts")
		} else {
			getPath("/alerts/resolved")
		}
	}
}

func genGetStatsAction() func() {
	return func() {
		getPath("/dashboard/stats")
	}
}
