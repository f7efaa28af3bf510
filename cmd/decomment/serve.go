package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"

	"github.com/pkg/browser"

	"github.com/phyten/decomment/internal/engine"
	engineopts "github.com/phyten/decomment/internal/engine/opts"
)

// serveCmd はドライラン結果を閲覧する簡易 Web UI を立ち上げる。
// このサーフェスからファイルが書き換わることはない。
func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		port = fs.Int("p", 8080, "port")
		root = fs.String("root", ".", "directory tree root")
		open = fs.Bool("open", false, "open the page in the default browser")
	)
	_ = fs.Parse(args)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})
	mux.HandleFunc("/api/scan", func(w http.ResponseWriter, r *http.Request) {
		opts, err := engineopts.ApplyWebQueryToOptions(engineopts.Defaults(*root), r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// プレビュー専用: 書き込みは常に無効
		opts.DryRun = true
		opts.Progress = false
		if err := engineopts.NormalizeAndValidate(&opts); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := engine.Run(opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	})

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		log.Fatal(err)
	}
	url := fmt.Sprintf("http://localhost:%d/", ln.Addr().(*net.TCPAddr).Port)
	log.Printf("decomment serve listening on %s (root=%s)", url, mustAbs(*root))
	if *open {
		if err := browser.OpenURL(url); err != nil {
			log.Printf("open browser: %v", err)
		}
	}
	log.Fatal(http.Serve(ln, mux))
}

func mustAbs(p string) string {
	a, _ := filepath.Abs(p)
	return a
}

const indexHTML = `<!doctype html>
<html><head><meta charset="utf-8"/><title>decomment</title>
<style>
body{font:14px/1.45 system-ui, sans-serif; margin:20px;}
table{border-collapse:collapse;width:100%;}
th,td{border:1px solid #ddd;padding:6px 8px;vertical-align:top;}
thead{background:#fafafa;position:sticky;top:0;}
code{font-family:ui-monospace, SFMono-Regular, Menlo, Consolas, monospace}
label{margin-right:12px}
input[type=text]{width:240px}
.small{color:#666}
tr.changed td{background:#f0fff0}
</style></head><body>
<h2>decomment <span class="small">(dry-run preview)</span></h2>
<form id="f">
<label>path: <input name="path" type="text"></label>
<label>exclude: <input name="exclude" type="text"></label>
<label>path_regex: <input name="path_regex" type="text"></label>
<label><input type="checkbox" name="all" value="1"> all files</label>
<label>jobs: <input type="text" name="jobs" size="4"></label>
<button>Scan</button>
</form>
<p class="small">Tip: Same params as CLI. Example: <code>/api/scan?path=src&all=1</code></p>
<div id="out"></div>
<script>
const f=document.getElementById('f'), out=document.getElementById('out');
f.onsubmit=async (e)=>{
 e.preventDefault();
 const q=new URLSearchParams();
 for(const [k,v] of new FormData(f)){ if(v) q.append(k,v); }
 const res=await fetch('/api/scan?'+q.toString());
 if(!res.ok){ out.innerHTML='<p>'+esc(await res.text())+'</p>'; return; }
 const data=await res.json();
 out.innerHTML=render(data);
}
function esc(s){return (''+(s??'')).replace(/[&<>"]/g, c=>({ '&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;'}[c]));}
function render(data){
 const rows=data.files||[];
 if(rows.length===0) return '<p>No changes.</p>';
 let h='<table><thead><tr><th>FILE</th><th>DIALECT</th><th>COMMENTS</th><th>LINES</th><th>SAVED</th><th>SKIPPED</th></tr></thead><tbody>';
 for(const r of rows){
	h+='<tr'+(r.changed?' class="changed"':'')+'>'+
		'<td><code>'+esc(r.file||'')+'</code></td>'+
		'<td>'+esc(r.dialect||'')+'</td>'+
		'<td>'+(r.comments_removed||0)+'</td>'+
		'<td>'+((r.lines_before||0)-(r.lines_after||0))+'</td>'+
		'<td>'+((r.bytes_before||0)-(r.bytes_after||0))+'</td>'+
		'<td>'+esc(r.skipped||'')+'</td>'+
		'</tr>';
 }
 h+='</tbody></table>';
 h+='<p class="small">'+rows.length+' reported, '+(data.changed||0)+' changed, '+(data.elapsed_ms||0)+'ms</p>';
 return h;
}
</script></body></html>`
