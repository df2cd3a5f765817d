package shader

const quadVertexSource = `#version 300 es
	layout (location = 0) in vec2 aPosition;
	out vec2 vNDC;

	void main(void) {
		vNDC = aPosition;
		gl_Position = vec4(aPosition, 0.0, 1.0);
	}
`

// gridVertexSource unprojects the quad corners. Near and far points are
// affine over the screen, so interpolated values are exact.
const gridVertexSource = `#version 300 es
	layout (location = 0) in vec2 aPosition;
	uniform mat4 uInvViewProj;
	out vec3 vNearPoint;
	out vec3 vFarPoint;

	vec3 unproject(vec2 ndc, float z) {
		vec4 p = uInvViewProj * vec4(ndc, z, 1.0);
		return p.xyz / p.w;
	}

	void main(void) {
		vNearPoint = unproject(aPosition, -1.0);
		vFarPoint = unproject(aPosition, 1.0);
		gl_Position = vec4(aPosition, 0.0, 1.0);
	}
`

const gridFragmentSource = `#version 300 es
	precision highp float;
	in vec3 vNearPoint;
	in vec3 vFarPoint;
	uniform mat4 uViewProj;
	uniform vec3 uLineColor;
	uniform float uLineAlpha;
	uniform float uScaleMajor;
	uniform float uScaleMinor;
	uniform float uAxisBand;
	uniform float uFadeStart;
	uniform float uReferenceNear;
	uniform float uReferenceFar;
	out vec4 outColor;

	vec4 grid(vec3 p, float scale) {
		vec2 coord = p.xz * scale;
		vec2 derivative = fwidth(coord);
		vec2 g = abs(fract(coord - 0.5) - 0.5) / derivative;
		float line = min(g.x, g.y);
		vec4 color = vec4(uLineColor, uLineAlpha * (1.0 - min(line, 1.0)));
		if (abs(p.x) < uAxisBand * min(derivative.x, 1.0)) {
			color.b = 1.0; // z axis
		}
		if (abs(p.z) < uAxisBand * min(derivative.y, 1.0)) {
			color.r = 1.0; // x axis
		}
		return color;
	}

	float linearDepth(float d) {
		float n = uReferenceNear;
		float f = uReferenceFar;
		float z = d * 2.0 - 1.0;
		return (2.0 * n * f) / (f + n - z * (f - n)) / f;
	}

	void main(void) {
		float t = -vNearPoint.y / (vFarPoint.y - vNearPoint.y);
		vec3 p = vNearPoint + t * (vFarPoint - vNearPoint);

		// Derivatives must be taken before discarding.
		vec4 color = clamp(grid(p, uScaleMajor) + grid(p, uScaleMinor), 0.0, 1.0);
		if (!(t > 0.0) || t > 1.0) {
			discard;
		}

		vec4 clip = uViewProj * vec4(p, 1.0);
		float d = clip.z / clip.w;
		gl_FragDepth = ((gl_DepthRange.far - gl_DepthRange.near) * d +
			gl_DepthRange.near + gl_DepthRange.far) / 2.0;

		color.a *= max(0.0, uFadeStart - linearDepth(d));
		outColor = color;
	}
`

const sphereFragmentSource = `#version 300 es
	precision highp float;
	in vec2 vNDC;
	uniform mat4 uViewProj;
	uniform mat4 uInvViewProj;
	uniform vec3 uCenter;
	uniform float uRadius;
	uniform vec3 uInsideColor;
	uniform float uInsideAlpha;
	uniform vec3 uOutsideColor;
	uniform float uOutsideAlpha;
	out vec4 outColor;

	void main(void) {
		vec4 near = uInvViewProj * vec4(vNDC, -1.0, 1.0);
		vec4 far = uInvViewProj * vec4(vNDC, 1.0, 1.0);
		vec3 origin = near.xyz / near.w;
		vec3 dir = normalize(far.xyz / far.w - origin);

		vec3 oc = origin - uCenter;
		float b = dot(dir, oc);
		float c = dot(oc, oc) - uRadius * uRadius;
		float disc = b * b - c;
		if (disc <= 0.0) {
			discard;
		}
		float s = sqrt(disc);
		float t = -b - s;
		outColor = vec4(uOutsideColor, uOutsideAlpha);
		if (t < 0.0) {
			t = -b + s;
			if (t < 0.0) {
				discard;
			}
			outColor = vec4(uInsideColor, uInsideAlpha);
		}

		vec4 clip = uViewProj * vec4(origin + t * dir, 1.0);
		gl_FragDepth = ((gl_DepthRange.far - gl_DepthRange.near) * (clip.z / clip.w) +
			gl_DepthRange.near + gl_DepthRange.far) / 2.0;
	}
`

const environmentFragmentSource = `#version 300 es
	precision highp float;
	in vec2 vNDC;
	uniform mat4 uInvViewProj;
	uniform mat4 uModel;
	uniform sampler2D uEnvironment;
	uniform float uStrength;
	uniform float uYaw;
	uniform float uYawSpan;
	uniform float uPitchMin;
	uniform float uPitchSpan;
	out vec4 outColor;

	void main(void) {
		vec4 near = uInvViewProj * vec4(vNDC, -1.0, 1.0);
		vec4 far = uInvViewProj * vec4(vNDC, 1.0, 1.0);
		vec3 d = far.xyz / far.w - near.xyz / near.w;
		d = (uModel * vec4(d, 0.0)).xyz;

		vec2 uv = vec2(
			(atan(-d.z, d.x) - uYaw) / uYawSpan,
			(acos(clamp(-d.y / length(d), -1.0, 1.0)) - uPitchMin) / uPitchSpan
		);
		if (any(lessThan(uv, vec2(-1e-5))) || any(greaterThan(uv, vec2(1.0 + 1e-5)))) {
			discard;
		}
		// Image rows are uploaded top first.
		vec4 color = texture(uEnvironment, vec2(uv.x, 1.0 - uv.y));
		outColor = vec4(color.rgb * uStrength, color.a);
	}
`

const blitFragmentSource = `#version 300 es
	precision highp float;
	in vec2 vNDC;
	uniform sampler2D uImage;
	uniform float uOpacity;
	out vec4 outColor;

	void main(void) {
		outColor = texture(uImage, vec2((vNDC.x + 1.0) / 2.0, (1.0 - vNDC.y) / 2.0));
		outColor.a *= uOpacity;
	}
`

const faceVertexSource = `#version 300 es
	layout (location = 0) in vec3 aPosition;
	uniform mat4 uViewProj;

	void main(void) {
		gl_Position = uViewProj * vec4(aPosition, 1.0);
	}
`

const faceFragmentSource = `#version 300 es
	precision highp float;
	uniform vec3 uFrontColor;
	uniform float uFrontAlpha;
	uniform vec3 uBackColor;
	uniform float uBackAlpha;
	out vec4 outColor;

	void main(void) {
		if (gl_FrontFacing) {
			outColor = vec4(uFrontColor, uFrontAlpha);
		} else {
			outColor = vec4(uBackColor, uBackAlpha);
		}
	}
`

const pointVertexSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	uniform mat4 uModelViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform float uZMin;
	uniform float uZRange;
	uniform float uPointSizeBase;
	vec4 viewPosition;
	lowp float c;
	out lowp vec4 vColor;

	void main(void) {
		viewPosition = uModelViewMatrix * aVertexPosition;
		gl_Position = uProjectionMatrix * viewPosition;

		if (uProjectionMatrix[3][3] == 0.0) {
			// Perspective mode
			gl_PointSize = clamp(uPointSizeBase / length(viewPosition), 1.0, uPointSizeBase);
		} else {
			// Orthographic mode
			gl_PointSize = uPointSizeBase / 20.0;
		}

		c = (aVertexPosition[2] - uZMin) / uZRange;
		vColor = vec4(c, 0.0, 1.0 - c, 1.0);
	}
`

const pointFragmentSource = `#version 300 es
	in lowp vec4 vColor;
	out lowp vec4 outColor;

	void main(void) {
		outColor = vColor;
	}
`
