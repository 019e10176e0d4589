package render

import (
	"html/template"
	"strconv"
)

var funcs = template.FuncMap{
	// blank for unset bounds
	"num": func(f float64) string {
		if f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
}

var templates = template.Must(template.New("render").Funcs(funcs).Parse(`
{{define "card"}}<article class="listing-card" data-id="{{.ID}}">
  <a href="/view/{{.ID}}"><img src="{{.Image}}" alt="{{.Title}}" class="listing-image" loading="lazy"></a>
  <div class="listing-content">
    <h3 class="listing-title">{{.Title}}</h3>
    <div class="listing-info">
      <div class="listing-info-item">📍 {{.Location}}</div>
      <div class="listing-info-item">📐 {{.Surface}}</div>
      <div class="listing-info-item">🛏️ {{.Bedrooms}}</div>
    </div>
    <div class="listing-price">{{.Price}}</div>
    {{- if .Tags}}
    <div class="listing-tags">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>
    {{- end}}
  </div>
</article>{{end}}

{{define "detail"}}<section class="listing-detail" data-id="{{.ID}}">
  {{- if .Images}}
  <div class="detail-images">{{range .Images}}<a href="{{.}}" target="_blank" rel="noopener noreferrer"><img src="{{.}}" alt="Photo" class="detail-image"></a>{{end}}</div>
  {{- end}}
  <div class="detail-section">
    <h2>{{.Title}}</h2>
    <ul class="listing-info">
      <li class="listing-info-item">📍 {{.Location}}</li>
      {{- range .Facts}}
      <li class="listing-info-item" title="{{.Label}}">{{.Icon}} {{.Value}}</li>
      {{- end}}
      {{- with .GPS}}
      <li class="listing-info-item">🗺️ GPS: {{.}}</li>
      {{- end}}
      {{- with .DPE}}
      <li class="listing-info-item">⚡ DPE: {{.}}</li>
      {{- end}}
      {{- with .GES}}
      <li class="listing-info-item">🌍 GES: {{.}}</li>
      {{- end}}
    </ul>
    <div class="listing-price">{{.Price}}</div>
    {{- if .Tags}}
    <div class="listing-tags">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>
    {{- end}}
  </div>
  <div class="detail-section">
    <h3>Description</h3>
    <div class="detail-description">{{.Description}}</div>
  </div>
  {{- with .URL}}
  <a href="{{.}}" target="_blank" rel="noopener noreferrer" class="detail-link">View full listing →</a>
  {{- end}}
</section>{{end}}

{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Listings</title>
  <style>
    body { font-family: sans-serif; margin: 0 auto; max-width: 1200px; padding: 1rem; }
    .filters { display: flex; flex-wrap: wrap; gap: .5rem; margin: 1rem 0; }
    .listings-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 1rem; }
    .listing-card { border: 1px solid #e2e8f0; border-radius: 8px; overflow: hidden; }
    .listing-image { width: 100%; height: 180px; object-fit: cover; }
    .listing-content { padding: .75rem; }
    .listing-price { font-weight: bold; }
    .tag { background: #e2e8f0; border-radius: 4px; margin-right: .25rem; padding: 0 .35rem; }
    .error-panel { background: #fee2e2; color: #991b1b; padding: 1rem; }
    .empty { grid-column: 1/-1; text-align: center; color: #64748b; }
    .tabs { display: flex; gap: .5rem; margin-bottom: 1rem; }
    .tab { background: none; border: 1px solid #e2e8f0; border-radius: 4px; cursor: pointer; padding: .35rem .75rem; }
    .tab.active { background: #1e293b; color: #fff; }
    .tab-panel[hidden] { display: none; }
    #map { height: 600px; }
    .marker-cluster { border-radius: 50%; color: #fff; font-weight: bold; text-align: center; }
    .marker-cluster div { line-height: inherit; }
    .marker-cluster-small { background: rgba(34, 197, 94, .85); width: 30px; height: 30px; line-height: 30px; }
    .marker-cluster-medium { background: rgba(234, 179, 8, .85); width: 40px; height: 40px; line-height: 40px; }
    .marker-cluster-large { background: rgba(239, 68, 68, .85); width: 50px; height: 50px; line-height: 50px; }
    .marker-approx { opacity: .6; }
  </style>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js" defer></script>
</head>
<body>
  <header>
    <h1>Listings</h1>
    <span id="total-listings" class="stats">{{.Count}}</span>
    {{- if .UsedFallback}}
    <span class="stats source">served from {{.Source}}</span>
    {{- end}}
  </header>
  <form class="filters" method="get" action="/">
    <input type="search" name="q" placeholder="Search" value="{{.Criteria.Query}}">
    <input type="number" name="price_min" placeholder="Min price" value="{{num .Criteria.PriceMin}}">
    <input type="number" name="price_max" placeholder="Max price" value="{{num .Criteria.PriceMax}}">
    <input type="number" name="surface_min" placeholder="Min surface" value="{{num .Criteria.SurfaceMin}}">
    <input type="number" name="surface_max" placeholder="Max surface" value="{{num .Criteria.SurfaceMax}}">
    <input type="number" name="min_bedrooms" placeholder="Bedrooms" value="{{if .Criteria.MinBedrooms}}{{.Criteria.MinBedrooms}}{{end}}">
    <input type="number" name="min_rooms" placeholder="Rooms" value="{{if .Criteria.MinRooms}}{{.Criteria.MinRooms}}{{end}}">
    <select name="city">
      <option value="">All cities</option>
      {{- range .CityOptions}}
      <option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
      {{- end}}
    </select>
    <select name="sort">
      {{- range .SortOptions}}
      <option value="{{.Key}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
      {{- end}}
    </select>
    <button type="submit">Apply</button>
    <a href="/?reset=1" class="reset">Reset</a>
  </form>
  {{- if .Err}}
  <div id="error" class="error-panel">Unable to load listings: {{.Err}}</div>
  {{- else if eq .Status "loading"}}
  <div id="loading" class="loading">Loading listings…</div>
  {{- end}}
  <nav class="tabs">
    <button type="button" class="tab active" data-tab="list">List</button>
    <button type="button" class="tab" data-tab="map">Map</button>
  </nav>
  <main id="listings-container" class="listings-grid tab-panel" data-panel="list">
    {{- range .Cards}}
    {{.}}
    {{- else}}
    {{- if not .Err}}
    <p class="empty">No listings found</p>
    {{- end}}
    {{- end}}
  </main>
  <section class="tab-panel" data-panel="map" hidden>
    <div id="map" data-tiles="{{.TileURL}}" data-clusters="/map/clusters"></div>
  </section>
  <script>
  (function () {
    var mapEl = document.getElementById("map");
    var map = null;
    var layer = null;

    function clusterIcon(p) {
      return L.divIcon({
        html: "<div><span>" + p.count + "</span></div>",
        className: "marker-cluster marker-cluster-" + p.size,
        iconSize: null
      });
    }

    function refreshMap() {
      if (!map) {
        map = L.map(mapEl).setView([45.764, 4.8357], 12);
        L.tileLayer(mapEl.dataset.tiles, {
          maxZoom: 19,
          attribution: "&copy; OpenStreetMap contributors"
        }).addTo(map);
        layer = L.layerGroup().addTo(map);
        map.on("moveend", refreshMap);
      }
      map.invalidateSize();
      var b = map.getBounds();
      var q = "?zoom=" + map.getZoom() + "&bbox=" + [b.getWest(), b.getSouth(), b.getEast(), b.getNorth()].join(",");
      fetch(mapEl.dataset.clusters + q)
        .then(function (res) { return res.json(); })
        .then(function (fc) {
          layer.clearLayers();
          fc.features.forEach(function (f) {
            var p = f.properties;
            var pos = [f.geometry.coordinates[1], f.geometry.coordinates[0]];
            if (p.count === 1) {
              L.marker(pos).bindPopup("<a href=\"/view/" + encodeURIComponent(p.ids[0]) + "\">Details</a>").addTo(layer);
              return;
            }
            L.marker(pos, { icon: clusterIcon(p) })
              .on("click", function () { map.setView(pos, map.getZoom() + 2); })
              .addTo(layer);
          });
        });
    }

    document.querySelectorAll(".tab").forEach(function (tab) {
      tab.addEventListener("click", function () {
        var name = tab.dataset.tab;
        document.querySelectorAll(".tab").forEach(function (t) { t.classList.toggle("active", t === tab); });
        document.querySelectorAll(".tab-panel").forEach(function (p) { p.hidden = p.dataset.panel !== name; });
        if (name === "map") {
          refreshMap();
        }
      });
    });
  })();
  </script>
</body>
</html>{{end}}
`))
