package render

// pageTemplate is the outer HTML shell for both payload variants. The static
// variant renders only head, styles and content; the interactive variant adds
// the toolbar, outline sidebar, match marker strip and scripts.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{.Head}}
</head>
<body{{with .BodyClass}} class="{{.}}"{{end}}>
{{if .Interactive}}<div class="toolbar">
  <button id="sidebar-toggle" title="Toggle outline">&#9776;</button>
  <span class="file-name">{{.Title}}</span>
  <span class="spacer"></span>
  <button id="source-toggle" title="Toggle raw source">MD</button>
  <input id="search-input" type="search" placeholder="Search document&hellip;">
  <span id="search-count"></span>
  <button id="search-prev" title="Previous match">&#9650;</button>
  <button id="search-next" title="Next match">&#9660;</button>
</div>
<nav id="outline">{{.OutlineHTML}}</nav>
<div id="marker-strip"></div>
{{end}}<main>
<div id="content">{{.Content}}</div>
{{if .Interactive}}<pre id="source-view"></pre>
{{end}}</main>
{{.Scripts}}
</body>
</html>
`

// appJS is the preview application script embedded in the interactive
// variant. It owns live reload (with scroll preservation), the search UI,
// math/diagram post-processing, the outline sidebar and the source toggle,
// and exposes the __findNext/__findPrevious globals.
const appJS = `(function () {
  'use strict';

  var state = window.__mdpeek || { features: {}, outline: [], sidebarHidden: false };
  var content = document.getElementById('content');
  var input = document.getElementById('search-input');
  var countEl = document.getElementById('search-count');
  var strip = document.getElementById('marker-strip');
  var searchActive = false;

  // ---- math and diagram post-processing ----

  function renderExtras() {
    if (state.features.math && typeof renderMathInElement !== 'undefined') {
      try {
        renderMathInElement(content, {
          delimiters: [
            { left: '$$', right: '$$', display: true },
            { left: '$', right: '$', display: false },
            { left: '\\[', right: '\\]', display: true },
            { left: '\\(', right: '\\)', display: false }
          ],
          // A malformed expression stays literal text; it must never abort
          // the rest of the document.
          throwOnError: false
        });
      } catch (e) {}
    }
    if (state.features.mermaid && window.mermaid) {
      try {
        mermaid.initialize({ startOnLoad: false });
        mermaid.init(undefined, content.querySelectorAll('.mermaid'));
      } catch (e) {}
    }
  }

  function rebuildOutline(entries) {
    var nav = document.getElementById('outline');
    if (!nav) return;
    nav.innerHTML = '';
    (entries || []).forEach(function (h) {
      var a = document.createElement('a');
      a.className = 'l' + h.level;
      a.href = '#' + h.id;
      a.textContent = h.title;
      nav.appendChild(a);
    });
  }

  // ---- live reload ----

  function connect() {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + location.host + '/ws');
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type !== 'reload') return;
      if (msg.features.math !== state.features.math ||
          msg.features.mermaid !== state.features.mermaid) {
        // Feature bundles are baked into the head at page load; fetch a
        // fresh payload when the required set changes.
        location.reload();
        return;
      }
      var scrollY = window.scrollY;
      content.innerHTML = msg.content;
      window.__markdownSource = msg.source;
      if (document.body.classList.contains('source-mode')) {
        document.getElementById('source-view').textContent = msg.source;
      }
      state.outline = msg.outline || [];
      rebuildOutline(state.outline);
      clearSearchUI();
      renderExtras();
      // Restore after the swapped content has been laid out.
      requestAnimationFrame(function () {
        requestAnimationFrame(function () { window.scrollTo(0, scrollY); });
      });
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }

  // ---- search ----

  function api(path, body) {
    return fetch(path, {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(body || {})
    }).then(function (res) { return res.ok ? res.json() : null; });
  }

  function setCurrent(pos) {
    content.querySelectorAll('mark.search-hit.current').forEach(function (m) {
      m.classList.remove('current');
    });
    if (!pos || !pos.total) return;
    var mark = content.querySelector('mark[data-match="' + (pos.current - 1) + '"]');
    if (mark) {
      mark.classList.add('current');
      mark.scrollIntoView({ block: 'center' });
    }
    countEl.className = '';
    countEl.textContent = pos.current + ' of ' + pos.total;
  }

  function drawMarkers(markers) {
    strip.innerHTML = '';
    (markers || []).forEach(function (f) {
      var m = document.createElement('div');
      m.className = 'match-marker';
      m.style.top = (f * 100) + '%';
      strip.appendChild(m);
    });
  }

  function clearSearchUI() {
    searchActive = false;
    countEl.textContent = '';
    countEl.className = '';
    strip.innerHTML = '';
  }

  function runSearch() {
    var query = input.value;
    if (!query) {
      return api('/api/search/clear').then(function (data) {
        if (data) content.innerHTML = data.content;
        clearSearchUI();
        renderExtras();
        return null;
      });
    }
    return api('/api/search', { query: query }).then(function (data) {
      if (!data) return null;
      content.innerHTML = data.content;
      drawMarkers(data.markers);
      if (!data.count) {
        searchActive = false;
        countEl.textContent = 'No matches';
        countEl.className = 'no-matches';
        renderExtras();
        return data;
      }
      searchActive = true;
      setCurrent({ current: 1, total: data.count });
      return data;
    });
  }

  window.__findNext = function () {
    if (!searchActive) return Promise.resolve(null);
    return api('/api/search/next').then(function (pos) {
      if (pos) setCurrent(pos);
      return pos;
    });
  };

  window.__findPrevious = function () {
    if (!searchActive) return Promise.resolve(null);
    return api('/api/search/prev').then(function (pos) {
      if (pos) setCurrent(pos);
      return pos;
    });
  };

  // ---- toolbar wiring ----

  var lastQuery = '';
  input.addEventListener('keydown', function (ev) {
    if (ev.key === 'Enter') {
      ev.preventDefault();
      if (searchActive && input.value === lastQuery) {
        if (ev.shiftKey) { window.__findPrevious(); } else { window.__findNext(); }
      } else {
        lastQuery = input.value;
        runSearch();
      }
    } else if (ev.key === 'Escape') {
      input.value = '';
      lastQuery = '';
      runSearch();
    }
  });
  document.getElementById('search-next').addEventListener('click', function () {
    window.__findNext();
  });
  document.getElementById('search-prev').addEventListener('click', function () {
    window.__findPrevious();
  });

  document.getElementById('sidebar-toggle').addEventListener('click', function () {
    var hidden = document.body.classList.toggle('sidebar-hidden');
    api('/api/sidebar', { hidden: hidden });
  });

  document.getElementById('source-toggle').addEventListener('click', function () {
    var on = document.body.classList.toggle('source-mode');
    if (on) {
      document.getElementById('source-view').textContent = window.__markdownSource || '';
    }
  });

  if (state.sidebarHidden) document.body.classList.add('sidebar-hidden');

  renderExtras();
  connect();
})();
`
