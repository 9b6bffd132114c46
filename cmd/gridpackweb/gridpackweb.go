package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/gridpack/atlas"
	"badc0de.net/pkg/gridpack/web"
)

var (
	listenAddress  = flag.String("listen_address", ":8080", "http listen address for gridpackweb")
	dir            = flag.String("dir", ".", "directory holding the built sheet and index")
	atlasName      = flag.String("atlas_name", atlas.DefaultAtlasName, "file name of the sheet image")
	indexName      = flag.String("index_name", atlas.DefaultIndexName, "file name of the index document")
	debugWebServer = flag.String("debug_web_server_listen_address", "", "where the debug server will listen")
)

func main() {
	flagutil.Parse()

	r := mux.NewRouter()
	web.NewHandler(*dir, *atlasName, *indexName).RegisterRoutes(r)

	if *debugWebServer != "" {
		http.HandleFunc("/debug/minimetrics", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "runtime.NumGoroutine(): %d\n", runtime.NumGoroutine())
		})
		go http.ListenAndServe(*debugWebServer, nil)
	}

	glog.Infof("gridpackweb serving %s on %s", *dir, *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress,
		handlers.CombinedLoggingHandler(os.Stderr, handlers.CompressHandler(r))))
}
