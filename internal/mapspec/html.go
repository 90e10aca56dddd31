package mapspec

import (
	"encoding/json"
	"html/template"
	"io"

	"github.com/rotisserie/eris"
)

// mapPage is a self-contained Leaflet page: the one piece of view the core
// ships so a MapSpec can be eyeballed without a frontend.
const mapPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
const spec = {{.Spec}};
const map = L.map('map').setView([spec.center.lat, spec.center.lon], spec.zoom);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
for (const m of spec.markers || []) {
  let html = '<div style="text-align:center;">';
  if (m.avatar_ref) {
    html += '<img src="' + m.avatar_ref + '" width="50" style="border-radius:50%;"><br>';
  }
  for (const line of m.popup) {
    html += '<p><b>' + line.replace(': ', ':</b> ') + '</p>';
  }
  html += '</div>';
  L.circleMarker([m.position.lat, m.position.lon], {
    radius: 8, color: m.color, fillColor: m.color, fillOpacity: 0.8
  }).bindPopup(html).addTo(map);
}
</script>
</body>
</html>
`

var mapTmpl = template.Must(template.New("map").Parse(mapPage))

// WriteHTML renders the spec as a standalone Leaflet page.
func WriteHTML(w io.Writer, title string, spec MapSpec) error {
	raw, err := json.Marshal(spec)
	if err != nil {
		return eris.Wrap(err, "mapspec: marshal spec")
	}
	data := struct {
		Title string
		Spec  template.JS
	}{Title: title, Spec: template.JS(raw)}
	return eris.Wrap(mapTmpl.Execute(w, data), "mapspec: render html")
}
