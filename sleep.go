package main

import "time"

// sleepFunc is indirected so tests can stub out real wall-clock sleeps;
// production wiring never touches it.
var sleepFunc = time.Sleep

func sleep(seconds int32) {
	sleepFunc(time.Duration(seconds) * time.Second)
}
