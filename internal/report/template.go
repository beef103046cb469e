package report

import "html/template"

var dashboardTemplate = template.Must(template.New("gap-dashboard").Parse(dashboardTemplateHTML))

const dashboardTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #3B82F6;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --border: #E2E8F0;
      --normal: #2563EB;
      --malicious: #DC2626;
    }
    [data-theme="dark"] {
      --primary: #0F172A;
      --secondary: #94A3B8;
      --accent: #60A5FA;
      --light: #0B1220;
      --background: #0F172A;
      --text: #E2E8F0;
      --border: rgba(148, 163, 184, 0.25);
    }
    body { background-color: var(--light); color: var(--text); }
    .navbar-dark, .bg-dark { background-color: var(--primary) !important; }
    .card { border: 1px solid var(--border); background-color: var(--background); }
    .table thead th { cursor: pointer; }
    .chart-canvas { position: relative; height: 360px; }
    .level-badge { padding: 4px; border-radius: 4px; }
    .col-contribution { background-color: #e6f7ff; }
    .col-importance { background-color: #fffbe6; }
    .verdict { font-size: 1.1rem; font-weight: 600; }
    .tier-Balanced { color: #10B981; }
    .tier-Mild { color: #F59E0B; }
    .tier-Significant { color: #DC2626; }
    .theme-toggle { border: 1px solid var(--border); color: var(--light); }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark bg-dark">
    <div class="container-fluid">
      <span class="navbar-brand mb-0 h1">{{ .Title }}</span>
      <div class="d-flex align-items-center gap-3">
        <button class="btn btn-sm theme-toggle" id="themeToggle" type="button" aria-label="Toggle dark mode">Theme</button>
        <span class="text-light">Generated: {{ .Generated }}</span>
      </div>
    </div>
  </nav>
  <main class="container-fluid my-4">
    <section>
      <div class="card shadow-sm">
        <div class="card-body">
          <div class="d-flex flex-wrap align-items-center gap-3">
            <label class="fw-semibold" for="metricSelect">Metric:</label>
            <select class="form-select form-select-sm w-auto" id="metricSelect"></select>
            <div class="form-check form-switch">
              <input class="form-check-input" type="checkbox" id="simulateToggle">
              <label class="form-check-label" for="simulateToggle">Simulate {{ .Labels.Malicious }} score</label>
            </div>
            <input type="range" class="form-range w-auto flex-grow-1" id="overrideSlider"
                   min="{{ .Policy.OverrideMin }}" max="{{ .Policy.OverrideMax }}" step="{{ .Step }}" value="{{ .Policy.OverrideMax }}" disabled>
            <span id="overrideValue" class="text-muted"></span>
          </div>
          <div class="mt-3 verdict" id="verdict"></div>
          <div class="small text-muted" id="pairLine"></div>
        </div>
      </div>
    </section>

    <section class="mt-4 row g-4">
      <div class="col-lg-6">
        <div class="card shadow-sm"><div class="card-body">
          <h5>Class comparison</h5>
          <div class="chart-canvas"><canvas id="barChart" role="img" aria-label="Per-class scores by metric"></canvas></div>
        </div></div>
      </div>
      <div class="col-lg-6">
        <div class="card shadow-sm"><div class="card-body">
          <h5>{{ .Labels.Normal }} vs {{ .Labels.Malicious }}</h5>
          <div class="chart-canvas"><canvas id="scatterChart" role="img" aria-label="Normal against malicious score"></canvas></div>
        </div></div>
      </div>
    </section>

    <section class="mt-4">
      <div class="card shadow-sm">
        <div class="card-header bg-white"><h5 class="mb-0">Feature importance</h5></div>
        <div class="card-body">
          <p class="text-muted">Use filters and sorting to analyze how each feature contributes to threat detection.</p>
          <input class="form-control form-control-sm mb-3" id="featureFilter" placeholder="Filter features">
          <div class="table-responsive">
            <table class="table table-striped table-hover table-bordered table-sm" id="featureTable">
              <thead class="table-light">
                <tr>
                  <th data-key="feature" data-type="text">Feature</th>
                  <th data-key="importanceScore" data-type="number">Importance Score</th>
                  <th data-key="contribution" data-type="number">Percentage Contribution (%)</th>
                  <th data-key="impact" data-type="level">Impact Level</th>
                  <th data-key="relevance" data-type="level">Business Relevance</th>
                </tr>
              </thead>
              <tbody></tbody>
            </table>
          </div>
        </div>
      </div>
    </section>
    {{ if .Notes }}
    <section class="mt-4">
      <div class="card shadow-sm"><div class="card-body" id="notes">{{ .Notes }}</div></div>
    </section>
    {{ end }}
  </main>

  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.2/dist/chart.umd.min.js"></script>
  <script>
    const dashboard = {{ .DataJSON }};
  </script>
  <script>
    (function() {
      var levelRank = { 'Low': 0, 'Moderate': 1, 'High': 2, 'Very High': 3 };
      var state = { metric: 0, simulate: false, sortKey: null, sortDir: 'asc', filter: '' };
      var charts = {};

      function currentPair() {
        var m = dashboard.metrics[state.metric];
        if (!state.simulate) {
          return { pair: m.pair, verdict: m.verdict, simulated: false };
        }
        var slider = document.getElementById('overrideSlider');
        var v = parseFloat(slider.value);
        var idx = Math.round((v - dashboard.policy.overrideMin) / dashboard.step);
        idx = Math.max(0, Math.min(m.sweep.length - 1, idx));
        var point = m.sweep[idx];
        return { pair: { normal: m.pair.normal, malicious: point.override }, verdict: point.verdict, simulated: true };
      }

      function renderVerdict() {
        var cur = currentPair();
        var el = document.getElementById('verdict');
        el.className = 'mt-3 verdict tier-' + cur.verdict.tier;
        el.textContent = cur.verdict.message;
        document.getElementById('pairLine').textContent =
          dashboard.labels.normal + ': ' + cur.pair.normal.toFixed(2) + '%  |  ' +
          dashboard.labels.malicious + ': ' + cur.pair.malicious.toFixed(2) + '%' +
          (cur.simulated ? ' (simulated)' : '');
        document.getElementById('overrideValue').textContent =
          cur.simulated ? cur.pair.malicious.toFixed(2) + '%' : '';
        updateCharts(cur);
      }

      function chartData(cur) {
        var normal = [], malicious = [];
        dashboard.metrics.forEach(function(m, i) {
          normal.push(m.pair.normal);
          malicious.push(i === state.metric ? cur.pair.malicious : m.pair.malicious);
        });
        return { normal: normal, malicious: malicious };
      }

      function updateCharts(cur) {
        var data = chartData(cur);
        var labels = dashboard.metrics.map(function(m) { return m.name; });
        var points = dashboard.metrics.map(function(m, i) {
          return { x: data.normal[i], y: data.malicious[i], label: m.name };
        });
        if (!charts.bar) {
          charts.bar = new Chart(document.getElementById('barChart'), {
            type: 'bar',
            data: { labels: labels, datasets: [
              { label: dashboard.labels.normal, data: data.normal, backgroundColor: '#2563EB' },
              { label: dashboard.labels.malicious, data: data.malicious, backgroundColor: '#DC2626' }
            ] },
            options: { maintainAspectRatio: false, scales: { y: { suggestedMin: 80, suggestedMax: 100 } } }
          });
          charts.scatter = new Chart(document.getElementById('scatterChart'), {
            type: 'scatter',
            data: { datasets: [{ label: 'Metrics', data: points, backgroundColor: '#334155', pointRadius: 7 }] },
            options: {
              maintainAspectRatio: false,
              plugins: { tooltip: { callbacks: { label: function(ctx) {
                return ctx.raw.label + ': (' + ctx.raw.x.toFixed(2) + ', ' + ctx.raw.y.toFixed(2) + ')';
              } } } },
              scales: {
                x: { title: { display: true, text: dashboard.labels.normal } },
                y: { title: { display: true, text: dashboard.labels.malicious } }
              }
            }
          });
          return;
        }
        charts.bar.data.datasets[1].data = data.malicious;
        charts.bar.update();
        charts.scatter.data.datasets[0].data = points;
        charts.scatter.update();
      }

      function badge(level, colors) {
        return '<span class="level-badge" style="color: ' + colors.foreground + '; background-color: ' +
          colors.background + ';">' + level + '</span>';
      }

      function escapeHTML(s) {
        return String(s).replace(/[&<>"']/g, function(c) {
          return { '&': '&amp;', '<': '&lt;', '>': '&gt;', '"': '&quot;', "'": '&#39;' }[c];
        });
      }

      function renderFeatures() {
        var rows = dashboard.features.filter(function(f) {
          if (!state.filter) { return true; }
          var q = state.filter.toLowerCase();
          return f.feature.toLowerCase().indexOf(q) >= 0 ||
            f.impact.toLowerCase().indexOf(q) >= 0 ||
            f.relevance.toLowerCase().indexOf(q) >= 0;
        });
        if (state.sortKey) {
          var key = state.sortKey, dir = state.sortDir === 'asc' ? 1 : -1;
          rows = rows.slice().sort(function(a, b) {
            var A = a[key], B = b[key];
            if (key === 'impact' || key === 'relevance') { A = levelRank[A]; B = levelRank[B]; }
            if (typeof A === 'string') { A = A.toLowerCase(); B = B.toLowerCase(); }
            return A < B ? -dir : (A > B ? dir : 0);
          });
        }
        var tbody = document.querySelector('#featureTable tbody');
        tbody.innerHTML = rows.map(function(f) {
          return '<tr><td>' + escapeHTML(f.feature) + '</td>' +
            '<td class="col-importance">' + f.importanceScore.toFixed(3) + '</td>' +
            '<td class="col-contribution">' + f.contribution.toFixed(1) + '</td>' +
            '<td>' + badge(f.impact, f.impactBadge) + '</td>' +
            '<td>' + badge(f.relevance, f.relevanceBadge) + '</td></tr>';
        }).join('');
      }

      function init() {
        var select = document.getElementById('metricSelect');
        dashboard.metrics.forEach(function(m, i) {
          var opt = document.createElement('option');
          opt.value = i;
          opt.textContent = m.name;
          select.appendChild(opt);
        });
        select.addEventListener('change', function() { state.metric = parseInt(select.value, 10); renderVerdict(); });

        var slider = document.getElementById('overrideSlider');
        document.getElementById('simulateToggle').addEventListener('change', function(e) {
          state.simulate = e.target.checked;
          slider.disabled = !state.simulate;
          renderVerdict();
        });
        slider.addEventListener('input', renderVerdict);

        document.getElementById('featureFilter').addEventListener('input', function(e) {
          state.filter = e.target.value.trim();
          renderFeatures();
        });
        document.querySelectorAll('#featureTable thead th').forEach(function(th) {
          th.addEventListener('click', function() {
            var key = th.getAttribute('data-key');
            state.sortDir = (state.sortKey === key && state.sortDir === 'asc') ? 'desc' : 'asc';
            state.sortKey = key;
            renderFeatures();
          });
        });

        document.getElementById('themeToggle').addEventListener('click', function() {
          var dark = document.documentElement.getAttribute('data-theme') === 'dark';
          document.documentElement.setAttribute('data-theme', dark ? 'light' : 'dark');
        });

        renderVerdict();
        renderFeatures();
      }

      document.addEventListener('DOMContentLoaded', init);
    })();
  </script>
</body>
</html>
`
