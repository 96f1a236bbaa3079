package output

import "html/template"

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Code Reports</title>
<style>
:root {
  --bg: #0b0c0e; --surface: #16181c; --border: #2a2d33; --muted: #6b7280;
  --text: #e5e7eb; --text-strong: #f9fafb; --success: #10b981;
  --warn: #f59e0b; --danger: #ef4444; --refactor: #8b5cf6; --radius: 8px;
}
* { box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; margin: 0; background: var(--bg); color: var(--text); font-size: 14px; line-height: 1.5; }
.page { max-width: 1200px; margin: 0 auto; padding: 24px; }
.header h1 { font-size: 1.5rem; font-weight: 600; color: var(--text-strong); margin: 0 0 4px 0; }
.header p { color: var(--muted); margin: 0 0 24px 0; font-size: 13px; }
.stats { display: grid; grid-template-columns: repeat(auto-fill, minmax(120px, 1fr)); gap: 12px; margin-bottom: 24px; }
.stat { background: var(--surface); border: 1px solid var(--border); border-radius: var(--radius); padding: 14px 16px; }
.stat-value { font-size: 1.5rem; font-weight: 700; color: var(--text-strong); font-variant-numeric: tabular-nums; }
.stat-label { font-size: 11px; text-transform: uppercase; letter-spacing: 0.04em; color: var(--muted); }
.stat.danger .stat-value { color: var(--danger); }
.stat.warn .stat-value { color: var(--warn); }
.stat.success .stat-value { color: var(--success); }
.section { margin-bottom: 24px; }
.section-title { font-size: 11px; font-weight: 600; text-transform: uppercase; letter-spacing: 0.06em; color: var(--muted); margin-bottom: 12px; }
.bar-row { display: flex; align-items: center; gap: 12px; margin-bottom: 8px; }
.bar-label { width: 86px; font-size: 13px; }
.bar-wrap { width: 160px; height: 8px; background: var(--border); border-radius: 4px; overflow: hidden; }
.bar { height: 100%; border-radius: 4px; min-width: 2px; }
.bar.critical { background: var(--danger); }
.bar.buggy { background: var(--warn); }
.bar.refactor { background: var(--refactor); }
.bar.todo { background: var(--muted); }
.bar-value { width: 2.2em; text-align: right; color: var(--muted); font-variant-numeric: tabular-nums; }
.table-wrap { background: var(--surface); border: 1px solid var(--border); border-radius: var(--radius); overflow: auto; }
table { border-collapse: collapse; width: 100%; font-size: 13px; }
th, td { padding: 8px 10px; border-bottom: 1px solid var(--border); text-align: left; }
thead th { font-weight: 600; color: var(--muted); font-size: 11px; text-transform: uppercase; letter-spacing: 0.04em; }
.heatmap td.cell { text-align: center; color: var(--muted); }
.heatmap .path-cell { max-width: 280px; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
.heat { font-weight: 600; color: var(--text-strong); }
.heat.lo.critical { background: rgba(239, 68, 68, 0.2); }
.heat.mid.critical { background: rgba(239, 68, 68, 0.35); }
.heat.hi.critical { background: rgba(239, 68, 68, 0.5); }
.heat.lo.buggy { background: rgba(245, 158, 11, 0.2); }
.heat.mid.buggy { background: rgba(245, 158, 11, 0.35); }
.heat.hi.buggy { background: rgba(245, 158, 11, 0.5); }
.heat.lo.refactor { background: rgba(139, 92, 246, 0.2); }
.heat.mid.refactor { background: rgba(139, 92, 246, 0.35); }
.heat.hi.refactor { background: rgba(139, 92, 246, 0.5); }
.heat.lo.todo { background: rgba(107, 114, 128, 0.25); }
.heat.mid.todo { background: rgba(107, 114, 128, 0.4); }
.heat.hi.todo { background: rgba(107, 114, 128, 0.55); }
</style>
</head>
<body>
<div class="page">
<header class="header">
<h1>Code Reports</h1>
<p>Generated from .codereports/reports.yaml on {{.Today}}</p>
</header>

<div class="stats">
<div class="stat"><div class="stat-value">{{.Stats.Total}}</div><div class="stat-label">Total</div></div>
<div class="stat success"><div class="stat-value">{{.Stats.Open}}</div><div class="stat-label">Open</div></div>
<div class="stat"><div class="stat-value">{{.Stats.Resolved}}</div><div class="stat-label">Resolved</div></div>
<div class="stat danger"><div class="stat-value">{{.Stats.Critical}}</div><div class="stat-label">Critical</div></div>
<div class="stat danger"><div class="stat-value">{{.Stats.Expired}}</div><div class="stat-label">Expired</div></div>
<div class="stat warn"><div class="stat-value">{{.Stats.ExpiringSoon}}</div><div class="stat-label">Expiring soon</div></div>
</div>

<div class="section">
<div class="section-title">By tag</div>
{{range .Tags}}<div class="bar-row"><span class="bar-label">{{.Tag}}</span><div class="bar-wrap" title="{{.Count}}"><div class="bar {{.Slug}}" style="width:{{.Percent}}%"></div></div><span class="bar-value">{{.Count}}</span></div>
{{else}}<p>No reports yet.</p>
{{end}}</div>

{{if .HeatRows}}<div class="section">
<div class="section-title">File x tag heatmap (top 30 files)</div>
<div class="table-wrap">
<table class="heatmap">
<thead><tr><th>File</th>{{range .Tags}}<th class="cell">{{.Tag}}</th>{{end}}</tr></thead>
<tbody>
{{range .HeatRows}}<tr><td class="path-cell" title="{{.Path}}">{{.Path}}</td>{{range .Cells}}<td class="cell {{.Class}}" title="{{.Title}}">{{if .Count}}{{.Count}}{{else}}-{{end}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</div>
</div>{{end}}

{{if .Open}}<div class="section">
<div class="section-title">Open reports</div>
<div class="table-wrap">
<table class="entries">
<thead><tr><th>ID</th><th>Location</th><th>Tag</th><th>Author</th><th>Expires</th><th>Message</th></tr></thead>
<tbody>
{{range .Open}}<tr><td>{{.ID}}</td><td>{{.Path}}:{{.Range}}</td><td>{{.Tag}}</td><td>{{with .Author.Git}}{{.}}{{end}}{{with .Author.Codeowner}} {{.}}{{end}}</td><td>{{with .ExpiresAt}}{{.}}{{end}}</td><td>{{.Message}}</td></tr>
{{end}}</tbody>
</table>
</div>
</div>{{end}}
</div>
</body>
</html>
`
